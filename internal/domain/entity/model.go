package entity

// Class is the pick tier an entity belongs to. Class A and class B carry
// different slot counts on the pick form.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
)

type Constructor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Class    Class  `json:"class"`
	IsActive bool   `json:"isActive"`
	Color    string `json:"color"`
}

type Driver struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ConstructorID string `json:"constructorId"`
	Class         Class  `json:"class"`
	IsActive      bool   `json:"isActive"`
}

// Register is the league's reference list of drivers and constructors,
// stored as one document and replaced wholesale by admins.
type Register struct {
	Drivers      []Driver      `json:"drivers"`
	Constructors []Constructor `json:"constructors"`
}

// TeamByDriver builds the current driver-to-constructor mapping. Drivers
// without a constructor are omitted; the scoring fallback treats them as
// constructor-less.
func (r Register) TeamByDriver() map[string]string {
	out := make(map[string]string, len(r.Drivers))
	for _, driver := range r.Drivers {
		if driver.ConstructorID != "" {
			out[driver.ID] = driver.ConstructorID
		}
	}
	return out
}
