package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hrflow/internal/domain/employee"
)

// PropagateFunc applies an approved application's payload onto the employee
// master record. Handlers are best-effort: a failure surfaces as a warning to
// the operator and never rolls back the status transition already committed.
type PropagateFunc func(ctx context.Context, employees employee.StoreAPI, app *Application) error

func propagateDependentAdd(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p DependentAddPayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode dependent-add payload: %w", err)
	}

	relationship := p.Relationship
	if p.RelationshipType == "spouse" {
		relationship = p.SpouseType
	}

	dep := employee.Dependent{
		Name:           strings.TrimSpace(p.LastName + " " + p.FirstName),
		Relationship:   relationship,
		BirthDate:      p.BirthDate,
		Income:         p.Income,
		LivingTogether: p.LivingTogether,
		PostalCode:     p.PostalCode,
		Address:        p.Address,
		MonthlySupport: p.MonthlySupport,
	}
	if p.MyNumber != nil {
		dep.MyNumber = *p.MyNumber
	}
	for _, att := range app.Attachments {
		dep.Documents = append(dep.Documents, att.URL)
	}

	_, err := employees.AddDependent(ctx, app.EmployeeNumber, dep)
	return err
}

func propagateDependentRemove(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p DependentRemovePayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode dependent-remove payload: %w", err)
	}
	return employees.RemoveDependentByMatch(ctx, app.EmployeeNumber, p.Dependent.Name, p.Dependent.Relationship)
}

func propagateAddressChange(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p AddressChangePayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode address-change payload: %w", err)
	}

	update := employee.AddressUpdate{
		PostalCode:         p.NewAddress.PostalCode,
		Address:            p.NewAddress.Address,
		AddressKana:        p.NewAddress.AddressKana,
		ResidentPostalCode: p.ResidentAddress.PostalCode,
		ResidentAddress:    p.ResidentAddress.Address,
	}

	switch {
	case p.ResidentAddress.SameAsNewAddress:
		update.ResidentPostalCode = p.NewAddress.PostalCode
		update.ResidentAddress = p.NewAddress.Address
	case p.ResidentAddress.SameAsOldAddress:
		// The legal-registration address keeps mirroring the address the
		// employee is moving away from.
		current, err := employees.GetByNumber(ctx, app.EmployeeNumber)
		if err != nil {
			return err
		}
		update.ResidentPostalCode = current.PostalCode
		update.ResidentAddress = current.Address
	}

	return employees.UpdateAddress(ctx, app.EmployeeNumber, update)
}

func propagateNameChange(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p NameChangePayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode name-change payload: %w", err)
	}
	return employees.UpdateName(ctx, app.EmployeeNumber, employee.NameUpdate{
		LastName:      p.NewName.LastName,
		FirstName:     p.NewName.FirstName,
		LastNameKana:  p.NewName.LastNameKana,
		FirstNameKana: p.NewName.FirstNameKana,
	})
}

func propagateNationalIDChange(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p NationalIDChangePayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode national-id-change payload: %w", err)
	}
	joined := JoinParts(p.NewMyNumber.Part1, p.NewMyNumber.Part2, p.NewMyNumber.Part3)
	return employees.UpdateMyNumber(ctx, app.EmployeeNumber, joined)
}

func propagateResignation(ctx context.Context, employees employee.StoreAPI, app *Application) error {
	var p ResignationPayload
	if err := json.Unmarshal(app.Payload, &p); err != nil {
		return fmt.Errorf("decode resignation payload: %w", err)
	}

	stamp := employee.ResignationStamp{
		Reason:                   p.ResignationReason,
		PostResignationAddress:   p.PostResignationAddress,
		PostResignationPhone:     p.PostResignationPhone,
		PostResignationEmail:     p.PostResignationEmail,
		PostResignationInsurance: p.PostResignationInsurance,
	}
	var err error
	if stamp.ResignationDate, err = parseDate(p.ResignationDate); err != nil {
		return fmt.Errorf("resignation date: %w", err)
	}
	if stamp.LastWorkDate, err = parseDate(p.LastWorkDate); err != nil {
		return fmt.Errorf("last work date: %w", err)
	}

	if p.SameAsCurrentAddress || p.SameAsCurrentPhone || p.SameAsCurrentEmail {
		current, err := employees.GetByNumber(ctx, app.EmployeeNumber)
		if err != nil {
			return err
		}
		if p.SameAsCurrentAddress {
			stamp.PostResignationAddress = current.Address
		}
		if p.SameAsCurrentPhone {
			stamp.PostResignationPhone = current.Phone
		}
		if p.SameAsCurrentEmail {
			stamp.PostResignationEmail = current.Email
		}
	}

	return employees.StampResignation(ctx, app.EmployeeNumber, stamp)
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
