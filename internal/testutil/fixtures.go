package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dvfactor/dv-factor/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	fullName string
	isAdmin  bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		fullName: "Test User",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

// AsAdmin marks the user as an admin
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.isAdmin = true
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FullName:     b.fullName,
		IsAdmin:      b.isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
		"fullName": b.fullName,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: authResp.User.Email,
	}

	return user, authResp.AccessToken
}

// BuildAdminAndAuthenticate creates an admin directly and logs in via the
// API. Registration never grants admin, so the flag is set on the row.
func BuildAdminAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	admin, password := NewUserBuilder().AsAdmin().Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    admin.Email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in admin: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return admin, authResp.AccessToken
}

// EditionBuilder creates test editions with a builder pattern
type EditionBuilder struct {
	year     int
	entryFee decimal.Decimal
	jackpot  decimal.Decimal
	status   domain.EditionStatus
}

// NewEditionBuilder creates a new EditionBuilder with default values
func NewEditionBuilder() *EditionBuilder {
	return &EditionBuilder{
		year:     time.Now().Year(),
		entryFee: decimal.NewFromFloat(3.00),
		jackpot:  decimal.NewFromFloat(50.00),
		status:   domain.EditionStatusOpen,
	}
}

// WithYear sets the edition year
func (b *EditionBuilder) WithYear(year int) *EditionBuilder {
	b.year = year
	return b
}

// WithEntryFee sets the entry fee
func (b *EditionBuilder) WithEntryFee(fee decimal.Decimal) *EditionBuilder {
	b.entryFee = fee
	return b
}

// WithJackpot sets the starting jackpot
func (b *EditionBuilder) WithJackpot(jackpot decimal.Decimal) *EditionBuilder {
	b.jackpot = jackpot
	return b
}

// WithStatus sets the edition status
func (b *EditionBuilder) WithStatus(status domain.EditionStatus) *EditionBuilder {
	b.status = status
	return b
}

// Build creates the edition in the database
func (b *EditionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Edition {
	t.Helper()

	start := time.Date(b.year, time.January, 1, 0, 0, 0, 0, time.UTC)
	edition := &domain.Edition{
		ID:              uuid.New(),
		Year:            b.year,
		EntryFee:        b.entryFee,
		Jackpot:         b.jackpot,
		TotalPool:       b.jackpot,
		StartDate:       start,
		BettingDeadline: start.AddDate(0, 1, 0),
		EndDate:         start.AddDate(1, 0, -1),
		Status:          b.status,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := db.Create(edition).Error; err != nil {
		t.Fatalf("failed to create edition: %v", err)
	}

	return edition
}

// EmployeeBuilder creates test employees
type EmployeeBuilder struct {
	firstName    string
	lastName     string
	employeeCode string
	resignedOn   *time.Time
}

// NewEmployeeBuilder creates a new EmployeeBuilder with default values
func NewEmployeeBuilder() *EmployeeBuilder {
	suffix := uuid.New().String()[:8]
	return &EmployeeBuilder{
		firstName:    "Employee",
		lastName:     suffix,
		employeeCode: fmt.Sprintf("EMP-%s", suffix),
	}
}

// WithName sets the employee name
func (b *EmployeeBuilder) WithName(first, last string) *EmployeeBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// ResignedOn marks the employee as resigned on the given date
func (b *EmployeeBuilder) ResignedOn(date time.Time) *EmployeeBuilder {
	b.resignedOn = &date
	return b
}

// Build creates the employee in the database
func (b *EmployeeBuilder) Build(t *testing.T, db *gorm.DB) *domain.Employee {
	t.Helper()

	employee := &domain.Employee{
		ID:           uuid.New(),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		EmployeeCode: b.employeeCode,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if b.resignedOn != nil {
		if err := employee.Resign(*b.resignedOn); err != nil {
			t.Fatalf("failed to mark employee resigned: %v", err)
		}
	}

	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	return employee
}

// SeedEmployees creates N active test employees
func SeedEmployees(t *testing.T, db *gorm.DB, count int) []*domain.Employee {
	t.Helper()

	employees := make([]*domain.Employee, count)
	for i := 0; i < count; i++ {
		employees[i] = NewEmployeeBuilder().
			WithName("Test", fmt.Sprintf("Employee%d", i)).
			Build(t, db)
	}
	return employees
}

// ParticipantBuilder creates test enrollments
type ParticipantBuilder struct {
	user      *domain.User
	edition   *domain.Edition
	amount    decimal.Decimal
	confirmed bool
}

// NewParticipantBuilder creates a new ParticipantBuilder
func NewParticipantBuilder(user *domain.User, edition *domain.Edition) *ParticipantBuilder {
	return &ParticipantBuilder{
		user:    user,
		edition: edition,
		amount:  edition.EntryFee,
	}
}

// WithAmount sets the payment amount
func (b *ParticipantBuilder) WithAmount(amount decimal.Decimal) *ParticipantBuilder {
	b.amount = amount
	return b
}

// Confirmed marks the payment as confirmed
func (b *ParticipantBuilder) Confirmed() *ParticipantBuilder {
	b.confirmed = true
	return b
}

// Build creates the participant in the database
func (b *ParticipantBuilder) Build(t *testing.T, db *gorm.DB) *domain.Participant {
	t.Helper()

	participant := &domain.Participant{
		ID:               uuid.New(),
		UserID:           b.user.ID,
		EditionID:        b.edition.ID,
		PaymentAmount:    b.amount,
		PaymentConfirmed: b.confirmed,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if b.confirmed {
		now := time.Now()
		participant.PaymentDate = &now
	}

	if err := db.Create(participant).Error; err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}

	return participant
}

// BetBuilder creates test bets
type BetBuilder struct {
	user    *domain.User
	edition *domain.Edition
	picks   [3]uuid.UUID
	bonus   *uuid.UUID
}

// NewBetBuilder creates a new BetBuilder for three employee picks
func NewBetBuilder(user *domain.User, edition *domain.Edition, picks [3]uuid.UUID) *BetBuilder {
	return &BetBuilder{
		user:    user,
		edition: edition,
		picks:   picks,
	}
}

// WithBonus puts the chiringuito bonus on the given employee
func (b *BetBuilder) WithBonus(employeeID uuid.UUID) *BetBuilder {
	b.bonus = &employeeID
	return b
}

// Build creates the bet in the database
func (b *BetBuilder) Build(t *testing.T, db *gorm.DB) *domain.Bet {
	t.Helper()

	bet := &domain.Bet{
		ID:                  uuid.New(),
		UserID:              b.user.ID,
		EditionID:           b.edition.ID,
		Employee1ID:         b.picks[0],
		Employee2ID:         b.picks[1],
		Employee3ID:         b.picks[2],
		ChiringuitoEmployee: b.bonus,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if err := bet.Validate(); err != nil {
		t.Fatalf("invalid test bet: %v", err)
	}

	if err := db.Create(bet).Error; err != nil {
		t.Fatalf("failed to create bet: %v", err)
	}

	return bet
}

// SeedPayoutTable loads a small payout table covering months 1-12 for up
// to three bettors. Percentages decline with the month and the bettor
// count, December paying nothing.
func SeedPayoutTable(t *testing.T, db *gorm.DB) []*domain.PayoutRow {
	t.Helper()

	var rows []*domain.PayoutRow
	for month := 1; month <= 12; month++ {
		base := 60 - (month-1)*5 // 60 down to 5; December 0
		if month == 12 {
			base = 0
		}
		for count := 1; count <= 3; count++ {
			pct := base - (count-1)*10
			if pct < 0 {
				pct = 0
			}
			rows = append(rows, &domain.PayoutRow{
				ID:           uuid.New(),
				Month:        month,
				BettorsCount: count,
				Percentage:   decimal.NewFromInt(int64(pct)),
			})
		}
	}

	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed payout table: %v", err)
	}
	return rows
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
