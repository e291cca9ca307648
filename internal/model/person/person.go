package person

// Category groups attributes into the fixed question panels shown to the
// player.
type Category string

const (
	CategoryEra        Category = "era"
	CategoryRegion     Category = "region"
	CategoryGender     Category = "gender"
	CategoryAge        Category = "age"
	CategoryOccupation Category = "occupation"
	CategoryTrait      Category = "trait"
)

// Person is one guessable historical figure. Only id, the year pair and
// TriviaLevel drive game logic; the remaining fields are display material
// carried through /data/init untouched.
type Person struct {
	ID                     int     `json:"id"`
	Name                   string  `json:"name"`
	NameEn                 *string `json:"name_en"`
	BirthYear              *int    `json:"birth_year"`
	DeathYear              *int    `json:"death_year"`
	Era                    *string `json:"era"`
	Region                 *string `json:"region"`
	Gender                 *string `json:"gender"`
	Occupation             *string `json:"occupation"`
	MajorAchievement       *string `json:"major_achievement"`
	HistoricalSignificance *string `json:"historical_significance"`
	FamousQuote            *string `json:"famous_quote"`
	PersonalityTrait       *string `json:"personality_trait"`
	FunFact                *string `json:"fun_fact"`
	ModernComparison       *string `json:"modern_comparison"`
	IfAliveToday           *string `json:"if_alive_today"`
	RecommendedFor         *string `json:"recommended_for"`
	TriviaLevel            *int    `json:"trivia_level"`
	Catchphrase            *string `json:"catchphrase"`
	Description            *string `json:"description"`
	ImageURL               *string `json:"image_url"`
	Hint1                  *string `json:"hint1"`
	Hint2                  *string `json:"hint2"`
	Hint3                  *string `json:"hint3"`
}

// DisplayName renders the name the oracle prompt embeds, including the
// transliterated form when one exists.
func (p Person) DisplayName() string {
	if p.NameEn != nil && *p.NameEn != "" {
		return p.Name + " (" + *p.NameEn + ")"
	}
	return p.Name
}

// Attribute is a predefined yes/no question backed by the truth table.
type Attribute struct {
	ID           int      `json:"id"`
	Category     Category `json:"category"`
	Question     string   `json:"question"`
	AttributeKey string   `json:"attribute_key"`
}

// PersonAttribute is one row of the sparse boolean truth table. A missing
// row reads as false.
type PersonAttribute struct {
	PersonID    int  `json:"person_id"`
	AttributeID int  `json:"attribute_id"`
	Value       bool `json:"value"`
}

// Snapshot bundles the full dataset the game boots from, in the shape the
// /data/init endpoint serves.
type Snapshot struct {
	Persons          []Person          `json:"persons"`
	Attributes       []Attribute       `json:"attributes"`
	PersonAttributes []PersonAttribute `json:"personAttributes"`
}

// Store exposes person/attribute retrieval for handlers and the evaluator.
type Store interface {
	Persons() []Person
	FindPerson(id int) (Person, bool)
	Attributes() []Attribute
	PersonAttributes() []PersonAttribute
	Value(personID, attributeID int) bool
}
