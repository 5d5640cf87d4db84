package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// AdminBookingsHandler serves the admin booking views off the read replica
// connection (database/sql over the pgx stdlib driver).
type AdminBookingsHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminBookingsHandler creates a new admin bookings handler.
func NewAdminBookingsHandler(db *sql.DB, logger *logging.Logger) *AdminBookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminBookingsHandler{db: db, logger: logger}
}

// BookingListItem represents a booking in list responses.
type BookingListItem struct {
	ID               string  `json:"id"`
	CatalogID        string  `json:"catalog_id"`
	ServiceName      *string `json:"service_name,omitempty"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	StartsAt         string  `json:"starts_at"`
	Timezone         string  `json:"timezone"`
	AmountKobo       int64   `json:"amount_kobo"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	CalendarEventID  *string `json:"calendar_event_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// BookingsListResponse represents a paginated list of bookings.
type BookingsListResponse struct {
	Bookings   []BookingListItem `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ListBookings returns a paginated booking list.
// GET /admin/bookings
func (h *AdminBookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	status := r.URL.Query().Get("status")
	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	offset := (page - 1) * pageSize

	query := `
		SELECT b.id, b.catalog_id, c.name, b.full_name, b.email, b.starts_at,
		       b.timezone, b.amount_kobo, b.payment_status, b.payment_reference,
		       b.calendar_event_id, b.created_at
		FROM bookings b
		LEFT JOIN catalog_entries c ON b.catalog_id = c.id
		WHERE 1 = 1
	`
	args := []any{}
	argNum := 1

	if status != "" {
		query += " AND b.payment_status = $" + strconv.Itoa(argNum)
		args = append(args, status)
		argNum++
	}
	if dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			query += " AND b.created_at >= $" + strconv.Itoa(argNum)
			args = append(args, t)
			argNum++
		}
	}
	if dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			query += " AND b.created_at < $" + strconv.Itoa(argNum)
			args = append(args, t.AddDate(0, 0, 1))
			argNum++
		}
	}

	countQuery := "SELECT COUNT(*) FROM bookings"
	countArgs := []any{}
	if status != "" {
		countQuery += " WHERE payment_status = $1"
		countArgs = append(countArgs, status)
	}
	var total int
	h.db.QueryRowContext(r.Context(), countQuery, countArgs...).Scan(&total)

	query += " ORDER BY b.created_at DESC"
	query += " LIMIT $" + strconv.Itoa(argNum) + " OFFSET $" + strconv.Itoa(argNum+1)
	args = append(args, pageSize, offset)

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		h.logger.Error("failed to query bookings", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var bookings []BookingListItem
	for rows.Next() {
		var b BookingListItem
		var serviceName, reference, eventID sql.NullString
		var startsAt, createdAt time.Time

		err := rows.Scan(
			&b.ID, &b.CatalogID, &serviceName, &b.FullName, &b.Email, &startsAt,
			&b.Timezone, &b.AmountKobo, &b.PaymentStatus, &reference,
			&eventID, &createdAt,
		)
		if err != nil {
			h.logger.Error("failed to scan booking", "error", err)
			continue
		}

		b.StartsAt = startsAt.Format(time.RFC3339)
		b.CreatedAt = createdAt.Format(time.RFC3339)
		if serviceName.Valid {
			b.ServiceName = &serviceName.String
		}
		if reference.Valid {
			b.PaymentReference = &reference.String
		}
		if eventID.Valid {
			b.CalendarEventID = &eventID.String
		}

		bookings = append(bookings, b)
	}

	if bookings == nil {
		bookings = []BookingListItem{}
	}

	totalPages := (total + pageSize - 1) / pageSize
	response := BookingsListResponse{
		Bookings:   bookings,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// BookingStatsResponse contains aggregated booking statistics.
type BookingStatsResponse struct {
	TotalBookings    int            `json:"total_bookings"`
	TotalAmountKobo  int64          `json:"total_amount_kobo"`
	ByStatus         map[string]int `json:"by_status"`
	TodayCount       int            `json:"today_count"`
	WeekCount        int            `json:"week_count"`
	MonthAmountKobo  int64          `json:"month_amount_kobo"`
}

// GetStats returns aggregate booking numbers for the dashboard.
// GET /admin/bookings/stats
func (h *AdminBookingsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := BookingStatsResponse{ByStatus: map[string]int{}}

	rows, err := h.db.QueryContext(ctx, `
		SELECT payment_status, COUNT(*), COALESCE(SUM(amount_kobo), 0)
		FROM bookings GROUP BY payment_status`)
	if err != nil {
		h.logger.Error("failed to query booking stats", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var amount int64
		if err := rows.Scan(&status, &count, &amount); err != nil {
			continue
		}
		stats.ByStatus[status] = count
		stats.TotalBookings += count
		if status == "paid" {
			stats.TotalAmountKobo += amount
		}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	h.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, today,
	).Scan(&stats.TodayCount)
	h.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, today.AddDate(0, 0, -7),
	).Scan(&stats.WeekCount)
	h.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_kobo), 0) FROM bookings WHERE payment_status = 'paid' AND created_at >= $1`,
		today.AddDate(0, -1, 0),
	).Scan(&stats.MonthAmountKobo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GetBooking returns one booking with full detail.
// GET /admin/bookings/{id}
func (h *AdminBookingsHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing id", http.StatusBadRequest)
		return
	}

	row := h.db.QueryRowContext(r.Context(), `
		SELECT b.id, b.catalog_id, c.name, b.full_name, b.email, b.starts_at,
		       b.timezone, b.amount_kobo, b.payment_status, b.payment_reference,
		       b.calendar_event_id, b.created_at
		FROM bookings b
		LEFT JOIN catalog_entries c ON b.catalog_id = c.id
		WHERE b.id = $1`, id)

	var b BookingListItem
	var serviceName, reference, eventID sql.NullString
	var startsAt, createdAt time.Time
	err := row.Scan(&b.ID, &b.CatalogID, &serviceName, &b.FullName, &b.Email, &startsAt,
		&b.Timezone, &b.AmountKobo, &b.PaymentStatus, &reference, &eventID, &createdAt)
	if err == sql.ErrNoRows {
		jsonError(w, "booking not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load booking", "error", err, "id", id)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	b.StartsAt = startsAt.Format(time.RFC3339)
	b.CreatedAt = createdAt.Format(time.RFC3339)
	if serviceName.Valid {
		b.ServiceName = &serviceName.String
	}
	if reference.Valid {
		b.PaymentReference = &reference.String
	}
	if eventID.Valid {
		b.CalendarEventID = &eventID.String
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}
