package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"transportbooking/internal/domain/models"
	"transportbooking/internal/utils"
)

// DocsService renders printable e-tickets for bookings.
type DocsService struct {
	RequestID string

	// Loader resolves a booking by id; wired to BookingService.GetByID.
	Loader func(ctx context.Context, idBooking string) (models.BookingTicket, error)
}

func (s DocsService) GenerateETicket(ctx context.Context, idBooking string) ([]byte, string, error) {
	booking, err := s.Loader(ctx, idBooking)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking=%s", booking.IDBooking))
	return buildETicketPDF(booking)
}

func buildETicketPDF(b models.BookingTicket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : %s", b.IDBooking),
		fmt.Sprintf("Passenger      : %s", safe(b.User.PassengerFullName, "-")),
		fmt.Sprintf("Phone          : %s", safe(b.User.PassengerPhone, "-")),
		fmt.Sprintf("Email          : %s", safe(b.User.PassengerEmail, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(b.Route.DepartureCity.CityName, "-"), safe(b.Route.DestinationCity.CityName, "-")),
		fmt.Sprintf("Transport      : %s", safe(b.Route.TransportType.TransportType, "-")),
		fmt.Sprintf("Departure      : %s", b.Route.DepartureTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Arrival        : %s", b.Route.ArrivalTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Booked at      : %s", b.BookingDate.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this e-ticket covers one passenger (one seat). Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", b.IDBooking, safeFilenamePart(b.User.PassengerFullName))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
