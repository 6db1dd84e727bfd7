package onboarding

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// welcomeSheet renders one group's onboarding sheet. The downstream generator
// accepts at most four employees per sheet, which is why the batch is grouped
// before this is called.
func welcomeSheet(group []StagedEmployee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Onboarding Sheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)

	for _, staged := range group {
		pdf.Cell(0, 8, fmt.Sprintf("Employee No: %s", staged.EmployeeNumber))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Name: %s %s (%s %s)",
			staged.LastName, staged.FirstName, staged.LastNameKana, staged.FirstNameKana))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Birth Date: %s", staged.BirthDate.Format("2006-01-02")))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", staged.Email))
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
