package application

// Normalization converts the flat form representation into the canonical
// payload persisted for an application, and back for populating an edit view.
// It never fails: missing optionals become empty strings and required-field
// enforcement stays with the rule tables.

func normalizeDependentAdd(form Fields) Payload {
	p := DependentAddPayload{
		RelationshipType: form.Get("relationshipType"),
		SpouseType:       form.Get("spouseType"),
		LastName:         form.Get("lastName"),
		FirstName:        form.Get("firstName"),
		LastNameKana:     form.Get("lastNameKana"),
		FirstNameKana:    form.Get("firstNameKana"),
		BirthDate:        form.Get("birthDate"),
		Income:           form.Get("income"),
		LivingTogether:   form.Get("livingTogether"),
	}

	p.Relationship, p.RelationshipOther = FoldOther(form.Get("relationship"), form.Get("relationshipOther"))
	p.Occupation, p.OccupationOther = FoldOther(form.Get("occupation"), form.Get("occupationOther"))

	p.BasicPensionNumber = JoinParts(form.Get("basicPensionNumber1"), form.Get("basicPensionNumber2"))

	if joined := JoinParts(form.Get("myNumber1"), form.Get("myNumber2"), form.Get("myNumber3")); joined != "" {
		p.MyNumber = &joined
	}

	separate := form.Get("livingTogether") == "separate"
	p.PostalCode = clearUnless(separate, form.Get("postalCode"))
	p.Address = clearUnless(separate, form.Get("address"))
	p.AddressKana = clearUnless(separate, form.Get("addressKana"))
	p.MonthlySupport = clearUnless(separate, form.Get("monthlySupport"))

	return p
}

func denormalizeDependentAdd(p DependentAddPayload) Fields {
	form := Fields{
		"relationshipType": p.RelationshipType,
		"spouseType":       p.SpouseType,
		"lastName":         p.LastName,
		"firstName":        p.FirstName,
		"lastNameKana":     p.LastNameKana,
		"firstNameKana":    p.FirstNameKana,
		"birthDate":        p.BirthDate,
		"income":           p.Income,
		"livingTogether":   p.LivingTogether,
		"postalCode":       p.PostalCode,
		"address":          p.Address,
		"addressKana":      p.AddressKana,
		"monthlySupport":   p.MonthlySupport,
	}

	form["relationship"], form["relationshipOther"] = UnfoldOther(p.Relationship, p.RelationshipOther)
	form["occupation"], form["occupationOther"] = UnfoldOther(p.Occupation, p.OccupationOther)

	pension := splitPensionNumber(p.BasicPensionNumber)
	form["basicPensionNumber1"], form["basicPensionNumber2"] = pension[0], pension[1]

	if p.MyNumber != nil {
		parts := splitMyNumber(*p.MyNumber)
		form["myNumber1"], form["myNumber2"], form["myNumber3"] = parts[0], parts[1], parts[2]
	}

	return form
}

func normalizeDependentRemove(form Fields) Payload {
	p := DependentRemovePayload{
		RemovalDate: form.Get("removalDate"),
		Dependent: RemovedDependent{
			Name:         form.Get("dependentName"),
			Relationship: form.Get("dependentRelationship"),
			BirthDate:    form.Get("dependentBirthDate"),
			MyNumber:     form.Get("dependentMyNumber"),
			Address:      form.Get("dependentAddress"),
			Notes:        form.Get("dependentNotes"),
		},
	}
	p.RemovalReason, p.RemovalReasonOther = FoldOther(form.Get("removalReason"), form.Get("removalReasonOther"))
	return p
}

func denormalizeDependentRemove(p DependentRemovePayload) Fields {
	form := Fields{
		"removalDate":           p.RemovalDate,
		"dependentName":         p.Dependent.Name,
		"dependentRelationship": p.Dependent.Relationship,
		"dependentBirthDate":    p.Dependent.BirthDate,
		"dependentMyNumber":     p.Dependent.MyNumber,
		"dependentAddress":      p.Dependent.Address,
		"dependentNotes":        p.Dependent.Notes,
	}
	form["removalReason"], form["removalReasonOther"] = UnfoldOther(p.RemovalReason, p.RemovalReasonOther)
	return form
}

func normalizeAddressChange(form Fields) Payload {
	overseas := form.Bool("isOverseasResident")
	sameOld := form.Bool("sameAsOldAddress")
	sameNew := form.Bool("sameAsNewAddress")
	if sameOld {
		sameNew = false
	}
	independent := !sameOld && !sameNew

	return AddressChangePayload{
		MoveDate:           form.Get("moveDate"),
		IsOverseasResident: overseas,
		NewAddress: NewAddress{
			PostalCode:  clearUnless(!overseas, form.Get("newPostalCode")),
			Address:     form.Get("newAddress"),
			AddressKana: clearUnless(!overseas, form.Get("newAddressKana")),
		},
		ResidentAddress: ResidentAddress{
			SameAsOldAddress: sameOld,
			SameAsNewAddress: sameNew,
			PostalCode:       clearUnless(independent, form.Get("residentPostalCode")),
			Address:          clearUnless(independent, form.Get("residentAddress")),
		},
	}
}

func denormalizeAddressChange(p AddressChangePayload) Fields {
	return Fields{
		"moveDate":           p.MoveDate,
		"isOverseasResident": boolField(p.IsOverseasResident),
		"newPostalCode":      p.NewAddress.PostalCode,
		"newAddress":         p.NewAddress.Address,
		"newAddressKana":     p.NewAddress.AddressKana,
		"sameAsOldAddress":   boolField(p.ResidentAddress.SameAsOldAddress),
		"sameAsNewAddress":   boolField(p.ResidentAddress.SameAsNewAddress),
		"residentPostalCode": p.ResidentAddress.PostalCode,
		"residentAddress":    p.ResidentAddress.Address,
	}
}

func normalizeNameChange(form Fields) Payload {
	return NameChangePayload{
		ChangeDate: form.Get("changeDate"),
		NewName: NewName{
			LastName:      form.Get("newLastName"),
			FirstName:     form.Get("newFirstName"),
			LastNameKana:  form.Get("newLastNameKana"),
			FirstNameKana: form.Get("newFirstNameKana"),
		},
	}
}

func denormalizeNameChange(p NameChangePayload) Fields {
	return Fields{
		"changeDate":       p.ChangeDate,
		"newLastName":      p.NewName.LastName,
		"newFirstName":     p.NewName.FirstName,
		"newLastNameKana":  p.NewName.LastNameKana,
		"newFirstNameKana": p.NewName.FirstNameKana,
	}
}

func normalizeNationalIDChange(form Fields) Payload {
	return NationalIDChangePayload{
		ChangeDate: form.Get("changeDate"),
		NewMyNumber: NewMyNumber{
			Part1: form.Get("myNumber1"),
			Part2: form.Get("myNumber2"),
			Part3: form.Get("myNumber3"),
		},
	}
}

func denormalizeNationalIDChange(p NationalIDChangePayload) Fields {
	return Fields{
		"changeDate": p.ChangeDate,
		"myNumber1":  p.NewMyNumber.Part1,
		"myNumber2":  p.NewMyNumber.Part2,
		"myNumber3":  p.NewMyNumber.Part3,
	}
}

func normalizeMaternityLeave(form Fields) Payload {
	stays := form.Bool("staysElsewhere")
	return MaternityLeavePayload{
		ExpectedDeliveryDate:    form.Get("expectedDeliveryDate"),
		IsMultipleBirth:         form.Bool("isMultipleBirth"),
		MaternityLeaveStartDate: form.Get("maternityLeaveStartDate"),
		MaternityLeaveEndDate:   form.Get("maternityLeaveEndDate"),
		StayAddress:             clearUnless(stays, form.Get("stayAddress")),
	}
}

func denormalizeMaternityLeave(p MaternityLeavePayload) Fields {
	return Fields{
		"expectedDeliveryDate":    p.ExpectedDeliveryDate,
		"isMultipleBirth":         boolField(p.IsMultipleBirth),
		"maternityLeaveStartDate": p.MaternityLeaveStartDate,
		"maternityLeaveEndDate":   p.MaternityLeaveEndDate,
		"staysElsewhere":          boolField(p.StayAddress != ""),
		"stayAddress":             p.StayAddress,
	}
}

func normalizeResignation(form Fields) Payload {
	sameAddr := form.Bool("sameAsCurrentAddress")
	samePhone := form.Bool("sameAsCurrentPhone")
	sameEmail := form.Bool("sameAsCurrentEmail")
	return ResignationPayload{
		ResignationDate:          form.Get("resignationDate"),
		LastWorkDate:             form.Get("lastWorkDate"),
		ResignationReason:        form.Get("resignationReason"),
		SeparationNotice:         form.Get("separationNotice"),
		PostResignationAddress:   clearUnless(!sameAddr, form.Get("postResignationAddress")),
		PostResignationPhone:     clearUnless(!samePhone, form.Get("postResignationPhone")),
		PostResignationEmail:     clearUnless(!sameEmail, form.Get("postResignationEmail")),
		PostResignationInsurance: form.Get("postResignationInsurance"),
		SameAsCurrentAddress:     sameAddr,
		SameAsCurrentPhone:       samePhone,
		SameAsCurrentEmail:       sameEmail,
	}
}

func denormalizeResignation(p ResignationPayload) Fields {
	return Fields{
		"resignationDate":          p.ResignationDate,
		"lastWorkDate":             p.LastWorkDate,
		"resignationReason":        p.ResignationReason,
		"separationNotice":         p.SeparationNotice,
		"postResignationAddress":   p.PostResignationAddress,
		"postResignationPhone":     p.PostResignationPhone,
		"postResignationEmail":     p.PostResignationEmail,
		"postResignationInsurance": p.PostResignationInsurance,
		"sameAsCurrentAddress":     boolField(p.SameAsCurrentAddress),
		"sameAsCurrentPhone":       boolField(p.SameAsCurrentPhone),
		"sameAsCurrentEmail":       boolField(p.SameAsCurrentEmail),
	}
}

func normalizeOnboarding(form Fields) Payload {
	return OnboardingPayload{
		LastName:        form.Get("lastName"),
		FirstName:       form.Get("firstName"),
		LastNameKana:    form.Get("lastNameKana"),
		FirstNameKana:   form.Get("firstNameKana"),
		BirthDate:       form.Get("birthDate"),
		Email:           form.Get("email"),
		DependentStatus: form.Get("dependentStatus"),
	}
}

func denormalizeOnboarding(p OnboardingPayload) Fields {
	return Fields{
		"lastName":        p.LastName,
		"firstName":       p.FirstName,
		"lastNameKana":    p.LastNameKana,
		"firstNameKana":   p.FirstNameKana,
		"birthDate":       p.BirthDate,
		"email":           p.Email,
		"dependentStatus": p.DependentStatus,
	}
}

func boolField(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
