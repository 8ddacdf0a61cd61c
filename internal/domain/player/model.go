package player

import "fmt"

// Category represents the badminton discipline a registry entry competes in.
type Category string

const (
	CategoryMensSingles   Category = "MS"
	CategoryWomensSingles Category = "WS"
	CategoryMensDoubles   Category = "MD"
	CategoryWomensDoubles Category = "WD"
	CategoryMixedDoubles  Category = "XD"
)

var AllCategories = map[Category]struct{}{
	CategoryMensSingles:   {},
	CategoryWomensSingles: {},
	CategoryMensDoubles:   {},
	CategoryWomensDoubles: {},
	CategoryMixedDoubles:  {},
}

// Player is a canonical registry entry. Doubles pairs are a single entry.
type Player struct {
	ID       string
	Name     string
	Price    int64
	Category Category
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllCategories[p.Category]; !ok {
		return fmt.Errorf("invalid player category: %s", p.Category)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
