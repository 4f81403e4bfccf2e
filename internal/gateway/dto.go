package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	employeemodel "github.com/dtalent/hr-client/internal/core/datamodel/employee"
	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
)

// The backend returns partially-populated records routinely, so every field
// mapped below carries a fallback default. Mapping is pure: the same wire
// record always yields the same local record.

// UserWire mirrors the user object inside the login response. Fields the
// client never displays are omitted on purpose.
type UserWire struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Initials       string `json:"initials"`
	EmployeeNumber int64  `json:"employeeNumber"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string   `json:"token"`
	User  UserWire `json:"user"`
}

// MapUser maps a login-response user to the local User model.
func MapUser(w UserWire) usermodel.User {
	name := w.FullName
	if name == "" {
		name = strings.TrimSpace(w.FirstName + " " + w.LastName)
	}
	if name == "" {
		name = w.Username
	}

	var avatar string
	if w.Initials != "" {
		avatar = "https://ui-avatars.com/api/?name=" + url.QueryEscape(w.Initials) + "&background=0D8ABC&color=fff"
	}

	return usermodel.User{
		ID:             w.ID,
		Name:           name,
		Email:          w.Email,
		Avatar:         avatar,
		Role:           w.Role,
		EmployeeNumber: w.EmployeeNumber,
	}
}

// EmployeeWire mirrors one record of GET /users/.
type EmployeeWire struct {
	ID             int64  `json:"id"`
	EmployeeNumber int64  `json:"employeeNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	Role           string `json:"role"`
	Position       string `json:"position"`
	Area           string `json:"area"`
	Sector         string `json:"sector"`
	Shift          string `json:"shift"`
	IsActive       *bool  `json:"isActive"`
	PayType        string `json:"payType"`
	Nationality    string `json:"nationality"`
}

// MapEmployee maps an API user record to the local Employee model.
func MapEmployee(w EmployeeWire) employeemodel.Employee {
	id := w.EmployeeNumber
	if id == 0 {
		id = w.ID
	}

	role := w.Role
	if role == "" {
		role = "Usuario"
	}

	cargo := w.Position
	if cargo == "" {
		cargo = w.Role
	}
	if cargo == "" {
		cargo = "Funcionario"
	}

	area := w.Area
	if area == "" {
		area = w.Sector
	}
	if area == "" {
		area = "General"
	}

	turno := w.Shift
	if turno == "" {
		turno = employeemodel.ShiftMorning
	}

	// only an explicit isActive=false marks the employee inactive
	status := employeemodel.StatusActive
	if w.IsActive != nil && !*w.IsActive {
		status = employeemodel.StatusInactive
	}

	payType := w.PayType
	if payType == "" {
		payType = employeemodel.PayTypeMonthly
	}

	nationality := w.Nationality
	if nationality == "" {
		nationality = employeemodel.NationalityFallback
	}

	phone := w.PhoneNumber
	if phone == "" {
		phone = "N/A"
	}

	return employeemodel.Employee{
		ID:               id,
		FirstName:        w.FirstName,
		LastName:         w.LastName,
		Email:            w.Email,
		Phone:            phone,
		Role:             role,
		Cargo:            cargo,
		Area:             area,
		Turno:            turno,
		Status:           status,
		TipoRemuneracion: payType,
		Nacionalidad:     nationality,
	}
}

// ReceiptWire mirrors one record of GET /receipts/. Month arrives as either
// a number or a string depending on backend version, hence json.Number via
// the raw field.
type ReceiptWire struct {
	ID        int64           `json:"id"`
	Month     json.RawMessage `json:"month"`
	Year      int             `json:"year"`
	FullDate  string          `json:"fullDate"`
	IsSigned  bool            `json:"isSigned"`
	Type      string          `json:"type"`
	CreatedAt string          `json:"createdAt"`
	Amount    float64         `json:"amount"`
	IsSended  bool            `json:"isSended"`
	IsReaded  bool            `json:"isReaded"`
}

// MapReceipt maps an API receipt record to the local Receipt model.
func MapReceipt(w ReceiptWire) receiptmodel.Receipt {
	month := monthString(w.Month)
	if month == "" {
		// fullDate is "MM/YYYY"
		if parts := strings.SplitN(w.FullDate, "/", 2); parts[0] != "" && len(parts) == 2 {
			month = padMonth(parts[0])
		}
	}
	if month == "" {
		month = "01"
	}

	year := w.Year
	if year == 0 {
		if parts := strings.SplitN(w.FullDate, "/", 2); len(parts) == 2 {
			if y, err := strconv.Atoi(parts[1]); err == nil {
				year = y
			}
		}
	}
	if year == 0 {
		year = time.Now().Year()
	}

	status := receiptmodel.StatusPending
	if w.IsSigned {
		status = receiptmodel.StatusPaid
	}

	name := "Recibo Nómina"
	sector := "General"
	if w.Type != "" {
		name = "Recibo " + w.Type
		sector = w.Type
	}

	date := w.CreatedAt
	if date == "" {
		m, _ := strconv.Atoi(month)
		date = time.Date(year, time.Month(m), 28, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}

	return receiptmodel.Receipt{
		ID:     w.ID,
		Name:   name,
		Date:   date,
		Amount: w.Amount,
		Month:  month,
		Year:   year,
		Status: status,
		Sector: sector,
		Sent:   w.IsSended,
		Read:   w.IsReaded,
	}
}

func monthString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return padMonth(asString)
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return padMonth(asNumber.String())
	}
	return ""
}

func padMonth(m string) string {
	m = strings.TrimSpace(m)
	if m == "" {
		return ""
	}
	if len(m) == 1 {
		return "0" + m
	}
	return m
}

// listEnvelope covers both response shapes the backend uses for lists: a
// paginated envelope with results, or a bare array.
type listEnvelope struct {
	Results    json.RawMessage `json:"results"`
	NumPages   int             `json:"numPages"`
	TotalCount int             `json:"totalCount"`
	Count      int             `json:"count"`
	PerPage    int             `json:"perPage"`
}

func decodeList(body []byte, out any) (listEnvelope, error) {
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Results != nil {
		if err := json.Unmarshal(env.Results, out); err != nil {
			return env, fmt.Errorf("decode results array: %w", err)
		}
		if env.TotalCount == 0 {
			env.TotalCount = env.Count
		}
		return env, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return env, fmt.Errorf("decode list body: %w", err)
	}
	return env, nil
}

type receiptFileResponse struct {
	File string `json:"file"`
}

// errorBody is the best-effort parse of a non-2xx response body. Code is the
// structured error code newer backend versions return; older ones only send
// detail or message text.
type errorBody struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}
