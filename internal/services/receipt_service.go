package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/utils"
)

// ReceiptService renders the downloadable PDF receipt for a paid booking
// from the booking snapshot alone.
type ReceiptService struct {
	RequestID string
	Loader    func(string) (receiptData, error)

	Bookings *BookingService
}

type receiptData struct {
	BookingID     string
	TravelerName  string
	RouteName     string
	InStopName    string
	OutStopName   string
	DepartureTime string
	ArrivalTime   string
	TripDate      string
	SeatNumber    string
	Price         int64
}

// Generate builds the receipt PDF and its filename for a booking id.
// Callers gate on the resolved outcome being success before invoking this.
func (s ReceiptService) Generate(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.loadReceiptData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", "booking_id="+bookingID)
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(ctx context.Context, bookingID string) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	if s.Bookings == nil {
		return receiptData{}, domain.InternalError{Msg: "receipt service not wired"}
	}
	b, err := s.Bookings.API.BookingByID(ctx, bookingID)
	if err != nil {
		return receiptData{}, err
	}
	return receiptFromBooking(b), nil
}

func receiptFromBooking(b models.Booking) receiptData {
	d := receiptData{
		BookingID:     b.ID,
		TravelerName:  b.Traveler.Fullname,
		InStopName:    b.InStopName,
		OutStopName:   b.OutStopName,
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		TripDate:      b.TripDate,
		SeatNumber:    b.SeatNumber,
		Price:         b.Price,
	}
	if b.Trip != nil {
		d.RouteName = b.Trip.Route.Name
	}
	return d
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tike Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TIKE PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : #%s", safe(d.BookingID, "-")),
		fmt.Sprintf("Passenger      : %s", safe(d.TravelerName, "-")),
		fmt.Sprintf("Route          : %s", safe(d.RouteName, "-")),
		fmt.Sprintf("Departure      : %s (%s)", safe(d.InStopName, "-"), safe(d.DepartureTime, "-")),
		fmt.Sprintf("Arrival        : %s (%s)", safe(d.OutStopName, "-"), safe(d.ArrivalTime, "-")),
		fmt.Sprintf("Duration       : %s", safe(utils.TripDuration(d.DepartureTime, d.ArrivalTime), "-")),
		fmt.Sprintf("Trip date      : %s", safe(d.TripDate, "-")),
		fmt.Sprintf("Seat           : %s", safe(d.SeatNumber, "-")),
		fmt.Sprintf("Amount paid    : %s", utils.FormatRWF(d.Price)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if png, err := receiptQR(d); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("trip-qr", opts, bytes.NewReader(png))
		pdf.Ln(4)
		pdf.ImageOptions("trip-qr", pdf.GetX(), pdf.GetY(), 40, 40, false, opts, 0, "")
		pdf.Ln(44)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this receipt with you. A National ID card or passport is required at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TIKE_RECEIPT_%s.pdf", safeFilenamePart(d.BookingID))
	return buf.Bytes(), filename, nil
}

// receiptQR encodes the same trip summary the payment page renders as a QR
// block, so scanned receipts match on-screen tickets.
func receiptQR(d receiptData) ([]byte, error) {
	summary, err := json.Marshal(map[string]string{
		"Name":           d.TravelerName,
		"Departure":      d.InStopName,
		"Departure_time": d.DepartureTime,
		"Arrival":        d.OutStopName,
		"Arrival_time":   d.ArrivalTime,
	})
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(summary), qrcode.Medium, 256)
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	out := replacer.Replace(strings.TrimSpace(s))
	if out == "" {
		return "receipt"
	}
	return out
}
