package reports

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"skillsaudit/internal/domain/employees"
)

// cvData is everything a curriculum vitae render needs, gathered up
// front so the renderer itself is pure.
type cvData struct {
	Profile        employees.Employee
	Skills         []employees.Skill
	Qualifications []employees.Qualification
	Trainings      []employees.Training
}

func renderCV(data cvData) ([]byte, error) {
	skills := make([]employees.Skill, len(data.Skills))
	copy(skills, data.Skills)
	sort.SliceStable(skills, func(i, j int) bool { return skills[i].Proficiency > skills[j].Proficiency })

	quals := make([]employees.Qualification, len(data.Qualifications))
	copy(quals, data.Qualifications)
	sort.SliceStable(quals, func(i, j int) bool { return quals[i].YearObtained > quals[j].YearObtained })

	// Only finished, approved trainings belong on a CV.
	var trainings []employees.Training
	for _, t := range data.Trainings {
		if t.Approved && t.Status == employees.TrainingStatusCompleted {
			trainings = append(trainings, t)
		}
	}
	sort.SliceStable(trainings, func(i, j int) bool { return trainings[i].EndDate > trainings[j].EndDate })

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, data.Profile.FullName())
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	if data.Profile.JobTitle != "" {
		pdf.Cell(0, 7, data.Profile.JobTitle)
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, data.Profile.Email)
	pdf.Ln(7)
	idNumber := data.Profile.IDNumber
	if idNumber == "" {
		idNumber = "N/A"
	}
	pdf.Cell(0, 7, "SA ID Number: "+idNumber)
	pdf.Ln(7)
	if data.Profile.Phone != "" {
		pdf.Cell(0, 7, data.Profile.Phone)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	cvSection(pdf, "Skills")
	if len(skills) == 0 {
		cvEmptyLine(pdf)
	}
	for _, sk := range skills {
		line := fmt.Sprintf("%s (%d%%)", sk.Name, sk.Proficiency)
		if sk.Category != "" {
			line = fmt.Sprintf("%s - %s (%d%%)", sk.Category, sk.Name, sk.Proficiency)
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	cvSection(pdf, "Qualifications")
	if len(quals) == 0 {
		cvEmptyLine(pdf)
	}
	for _, q := range quals {
		line := q.Name
		if q.Institution != "" {
			line += ", " + q.Institution
		}
		if q.YearObtained != "" {
			line += " (" + q.YearObtained + ")"
		}
		if q.IsVerified {
			line += " [verified]"
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	cvSection(pdf, "Completed Training")
	if len(trainings) == 0 {
		cvEmptyLine(pdf)
	}
	for _, t := range trainings {
		line := t.Name
		if t.Provider != "" {
			line += ", " + t.Provider
		}
		if t.EndDate != "" {
			line += " (completed " + t.EndDate + ")"
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cvSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func cvEmptyLine(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "None recorded")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
}
