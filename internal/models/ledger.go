// Package models defines the budget ledger document tree and the user
// credential record. A Ledger is one user's full tracking period: twelve
// MonthRecords, each holding CategoryRecords with itemized SubCategoryRecords.
package models

// MonthNames lists the calendar month names in ledger order. A ledger carries
// exactly one MonthRecord per name; the names act as unique keys.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsMonthName reports whether name is one of the twelve month names.
func IsMonthName(name string) bool {
	for _, m := range MonthNames {
		if m == name {
			return true
		}
	}
	return false
}

// SubCategoryRecord is an itemized spend entry inside a category.
type SubCategoryRecord struct {
	SubCategory string `bson:"sub_category" json:"sub_category" binding:"required,min=1,max=100"`
	AmountSpent int    `bson:"amount_spent" json:"amount_spent" binding:"gte=0"`
}

// CategoryRecord is a budget bucket within a month. Category names are not
// deduplicated on insert; lookups resolve to the first match in slice order.
type CategoryRecord struct {
	Category      string              `bson:"category" json:"category" binding:"required,min=1,max=100"`
	TotalBudget   int                 `bson:"total_budget" json:"total_budget" binding:"gte=0"`
	SubCategories []SubCategoryRecord `bson:"sub_categories" json:"sub_categories" binding:"dive"`
}

// SpentTotal returns the sum of this category's sub-category spends.
func (c *CategoryRecord) SpentTotal() int {
	total := 0
	for _, sc := range c.SubCategories {
		total += sc.AmountSpent
	}
	return total
}

// RemainingBudget returns how much of TotalBudget is still unspent.
// Negative if the category is overspent.
func (c *CategoryRecord) RemainingBudget() int {
	return c.TotalBudget - c.SpentTotal()
}

// MonthRecord is one calendar month's budget within a ledger.
//
// AmountSpent is derived: it is never set by callers and must always equal
// TotalSpent(). Every mutation that touches the category list re-runs the
// recomputation from scratch so the stored value cannot drift.
//
// MonthlyBudget is NOT derived. It starts as the sum of the default category
// budgets and is thereafter adjusted by the running delta of category budget
// edits, so it can diverge from the live category budgets if categories are
// deleted without first zeroing their budget.
type MonthRecord struct {
	Month         string           `bson:"month" json:"month"`
	MonthlyBudget int              `bson:"monthly_budget" json:"monthly_budget"`
	AmountSpent   int              `bson:"amount_spent" json:"amount_spent"`
	Categories    []CategoryRecord `bson:"categories" json:"categories"`
}

// TotalSpent computes the month's spend as a pure function of its current
// categories: the sum over all categories of all sub-category spends.
func (m *MonthRecord) TotalSpent() int {
	total := 0
	for i := range m.Categories {
		total += m.Categories[i].SpentTotal()
	}
	return total
}

// RecomputeSpent re-derives AmountSpent from the current category list.
func (m *MonthRecord) RecomputeSpent() {
	m.AmountSpent = m.TotalSpent()
}

// Savings returns MonthlyBudget - AmountSpent. Negative when overspent.
func (m *MonthRecord) Savings() int {
	return m.MonthlyBudget - m.AmountSpent
}

// FindCategory returns the first category with the given name, or nil.
func (m *MonthRecord) FindCategory(name string) *CategoryRecord {
	for i := range m.Categories {
		if m.Categories[i].Category == name {
			return &m.Categories[i]
		}
	}
	return nil
}

// Ledger is one user's full budget document, keyed by user id. Version is an
// optimistic concurrency counter bumped by the store on every checked write.
type Ledger struct {
	UserID  string        `bson:"_id" json:"userid"`
	Version int64         `bson:"version" json:"-"`
	Months  []MonthRecord `bson:"months" json:"months"`
}

// FindMonth returns the month record with the given name, or nil.
func (l *Ledger) FindMonth(name string) *MonthRecord {
	for i := range l.Months {
		if l.Months[i].Month == name {
			return &l.Months[i]
		}
	}
	return nil
}

// Default starter budget split applied to every month at registration.
const (
	DefaultFoodBudget      = 600
	DefaultTransportBudget = 300
)

// NewLedger builds the initial ledger created at registration: all twelve
// months pre-populated with the starter categories, zero spend, and a monthly
// budget equal to the sum of the starter category budgets.
func NewLedger(userID string) *Ledger {
	months := make([]MonthRecord, 0, len(MonthNames))
	for _, name := range MonthNames {
		months = append(months, MonthRecord{
			Month:         name,
			MonthlyBudget: DefaultFoodBudget + DefaultTransportBudget,
			AmountSpent:   0,
			Categories: []CategoryRecord{
				{Category: "Food", TotalBudget: DefaultFoodBudget, SubCategories: []SubCategoryRecord{}},
				{Category: "Transportation", TotalBudget: DefaultTransportBudget, SubCategories: []SubCategoryRecord{}},
			},
		})
	}
	return &Ledger{UserID: userID, Months: months}
}

// LeaderboardEntry is a derived, never-persisted ranking row: one user's
// savings for a selected month.
type LeaderboardEntry struct {
	UserID       string `json:"userid"`
	TotalSavings int    `json:"total_savings"`
}
