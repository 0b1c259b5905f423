package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"transportbooking/internal/domain"
	"transportbooking/internal/domain/models"
)

func TestGenerateETicket(t *testing.T) {
	booking := models.BookingTicket{
		IDBooking:   "b7",
		Route:       testRoute("r1", testClock.Add(2*time.Hour), 40, 4),
		User:        testUser(),
		BookingDate: testClock,
	}
	svc := DocsService{
		Loader: func(ctx context.Context, id string) (models.BookingTicket, error) {
			if id != "b7" {
				t.Fatalf("loader called with %q", id)
			}
			return booking, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(context.Background(), "b7")
	if err != nil {
		t.Fatalf("GenerateETicket: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", pdf[:8])
	}
	if filename != "ETICKET_b7_Ivan_Petrov.pdf" {
		t.Errorf("filename = %q", filename)
	}
}

func TestGenerateETicketPropagatesLoaderError(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, id string) (models.BookingTicket, error) {
			return models.BookingTicket{}, domain.NotFoundError{Resource: "booking"}
		},
	}
	_, _, err := svc.GenerateETicket(context.Background(), "b999")
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not-found error", err)
	}
}
