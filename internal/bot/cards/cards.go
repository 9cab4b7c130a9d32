// Package cards builds the structured summaries the bot renders between
// prompts. A card is read-only; the channel decides how to draw it.
package cards

import (
	"time"

	"github.com/speedyfix/auto-garage/internal/models"
)

const LogoURL = "https://i.postimg.cc/VsGSB9p9/logo-speedyfix.png"

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Card struct {
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url,omitempty"`
	Fields   []Field `json:"fields,omitempty"`
}

func Welcome() Card {
	return Card{
		Title:    "Welcome to SpeedyFix Auto Garage",
		ImageURL: LogoURL,
		Fields: []Field{
			{Label: "Make appointment", Value: "Book a repair appointment"},
			{Label: "Opening hours", Value: "See when the garage is open"},
			{Label: "Repair types", Value: "See what repairs we offer"},
		},
	}
}

func OpeningHours() Card {
	return Card{
		Title:    "Opening hours",
		ImageURL: LogoURL,
		Fields: []Field{
			{Label: "Monday - Friday", Value: "09:00 - 17:00"},
			{Label: "Saturday", Value: "Closed"},
			{Label: "Sunday", Value: "Closed"},
		},
	}
}

func CustomerDetails(customer *models.Customer) Card {
	return Card{
		Title:    "Customer details for " + customer.FirstName + " " + customer.LastName,
		ImageURL: LogoURL,
		Fields: []Field{
			{Label: "Email", Value: customer.Mail},
			{Label: "Phone number", Value: customer.PhoneNumber},
			{Label: "License plate", Value: customer.LicensePlate},
		},
	}
}

func RepairTypeCatalog(repairTypes []models.RepairType) Card {
	card := Card{
		Title:    "Repair types",
		ImageURL: LogoURL,
	}
	for _, rt := range repairTypes {
		card.Fields = append(card.Fields, Field{
			Label: rt.RepairName,
			Value: rt.RepairDescription,
		})
	}
	return card
}

func AppointmentDetails(customer *models.Customer, repairName, date, startTime string) Card {
	return Card{
		Title:    "Appointment Confirmation",
		ImageURL: LogoURL,
		Fields: []Field{
			{Label: "Customer", Value: customer.FirstName + " " + customer.LastName},
			{Label: "Repair Type", Value: repairName},
			{Label: "Appointment Date", Value: displayDate(date)},
			{Label: "Time Slot", Value: startTime},
			{Label: "License Plate", Value: customer.LicensePlate},
		},
	}
}

// displayDate renders the stored "2006-01-02" form as "January 2, 2006".
func displayDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
