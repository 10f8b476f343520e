// Package domain contains the pure customer-intelligence pipeline: field
// extraction, service classification, status resolution, booking prediction,
// and per-customer aggregation. Nothing in this package performs I/O.
package domain

import "time"

// ServiceType is the closed catalog of cleaning service codes.
type ServiceType string

const (
	ServicePrivat  ServiceType = "REN-001" // Privatrengøring
	ServiceHoved   ServiceType = "REN-002" // Hovedrengøring
	ServiceFlyt    ServiceType = "REN-003" // Flytterengøring
	ServiceErhverv ServiceType = "REN-004" // Erhvervsrengøring
	ServiceFast    ServiceType = "REN-005" // Fast rengøring
)

// AllServiceTypes lists the catalog in code order. Breakdown maps are keyed
// by every entry here so counts are always present, even at zero.
var AllServiceTypes = []ServiceType{
	ServicePrivat,
	ServiceHoved,
	ServiceFlyt,
	ServiceErhverv,
	ServiceFast,
}

var serviceNames = map[ServiceType]string{
	ServicePrivat:  "Privatrengøring",
	ServiceHoved:   "Hovedrengøring",
	ServiceFlyt:    "Flytterengøring",
	ServiceErhverv: "Erhvervsrengøring",
	ServiceFast:    "Fast Rengøring",
}

// DisplayName returns the human-readable Danish service name.
func (t ServiceType) DisplayName() string {
	return serviceNames[t]
}

// IsKnown reports whether t is one of the five catalog codes.
func (t ServiceType) IsKnown() bool {
	_, ok := serviceNames[t]
	return ok
}

// Status is the lifecycle state of a service event.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRebooked  Status = "rebooked"
)

// RawEvent is one calendar entry as supplied by the upstream identity
// resolution process. Read-only input.
type RawEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	Location    string    `json:"location,omitempty"`
}

// MailThread is a reference to a linked email conversation.
type MailThread struct {
	ThreadID string     `json:"threadId"`
	Subject  string     `json:"subject"`
	Date     *time.Time `json:"date,omitempty"`
}

// RawProfile is an identity-resolved customer grouping. The pipeline only
// reads it; ownership stays with the upstream resolver.
type RawProfile struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Emails          []string     `json:"emails"`
	Phones          []string     `json:"phones"`
	Addresses       []string     `json:"addresses"`
	Companies       []string     `json:"companies,omitempty"`
	BillyCustomerID string       `json:"billyCustomerId,omitempty"`
	CalendarEvents  []RawEvent   `json:"calendarEvents"`
	MailThreads     []MailThread `json:"mailThreads,omitempty"`
	Sources         []string     `json:"sources,omitempty"`
	Confidence      float64      `json:"confidence"`
}

// ServiceEvent is one classified occurrence of a cleaning service, derived
// from a RawEvent. Once built it is treated as an immutable fact.
type ServiceEvent struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Title       string      `json:"title"`
	ServiceType ServiceType `json:"serviceType"`
	ServiceName string      `json:"serviceName"`

	// IsFirstTime is only set for fast rengøring events.
	IsFirstTime *bool `json:"isFirstTime,omitempty"`

	PropertySize  *string  `json:"propertySize,omitempty"`
	TimeEstimate  *string  `json:"timeEstimate,omitempty"`
	TimeActual    *string  `json:"timeActual,omitempty"`
	PriceEstimate *float64 `json:"priceEstimate,omitempty"`
	PriceActual   *float64 `json:"priceActual,omitempty"`
	HourlyRate    float64  `json:"hourlyRate"`

	Address    *string `json:"address,omitempty"`
	AccessCode *string `json:"accessCode,omitempty"`

	Services       []string `json:"services"`
	WindowCleaning bool     `json:"windowCleaning"`

	Status Status `json:"status"`

	Conflicts           *string `json:"conflicts,omitempty"`
	Discount            *string `json:"discount,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	RawDescription string `json:"rawDescription,omitempty"`
}

// CustomerCard is the aggregated, ranked view of one customer. It is rebuilt
// wholesale from the profile's service history on every run, never patched.
type CustomerCard struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`

	Emails         []string `json:"emails"`
	Phones         []string `json:"phones"`
	Addresses      []string `json:"addresses"`
	PrimaryEmail   *string  `json:"primaryEmail,omitempty"`
	PrimaryPhone   *string  `json:"primaryPhone,omitempty"`
	PrimaryAddress *string  `json:"primaryAddress,omitempty"`

	BillyCustomerID *string `json:"billyCustomerId,omitempty"`
	BillyCompany    *string `json:"billyCompany,omitempty"`

	ServiceHistory    []ServiceEvent `json:"serviceHistory"`
	TotalBookings     int            `json:"totalBookings"`
	CompletedBookings int            `json:"completedBookings"`
	CancelledBookings int            `json:"cancelledBookings"`

	ServiceBreakdown map[ServiceType]int `json:"serviceBreakdown"`

	IsFastCustomer        bool       `json:"isFastCustomer"`
	FastCleaningCount     int        `json:"fastCleaningCount,omitempty"`
	NextScheduledCleaning *time.Time `json:"nextScheduledCleaning,omitempty"`

	TotalRevenue        float64 `json:"totalRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`
	LifetimeValue       float64 `json:"lifetimeValue"`

	MailThreads []MailThread `json:"mailThreads,omitempty"`

	HasConflicts    bool     `json:"hasConflicts"`
	ConflictNotes   []string `json:"conflictNotes"`
	DiscountHistory []string `json:"discountHistory"`
	Preferences     []string `json:"preferences"`

	NextAction    *string    `json:"nextAction,omitempty"`
	NextActionDue *time.Time `json:"nextActionDue,omitempty"`

	Sources      []string   `json:"sources,omitempty"`
	Confidence   float64    `json:"confidence"`
	FirstSeen    *time.Time `json:"firstSeen,omitempty"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

// DefaultHourlyRate is the standard rate in kr/hour used to derive a price
// when a description carries a duration but no explicit amount.
const DefaultHourlyRate = 349

// ExtractConfig carries market-dependent extraction settings.
type ExtractConfig struct {
	// HourlyRate in kr/hour, used for price derivation from duration.
	HourlyRate float64
}

// DefaultExtractConfig returns the Danish-market defaults.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{HourlyRate: DefaultHourlyRate}
}
