package generator

import (
	"time"

	"github.com/willfong/employeedb/internal/models"
	"github.com/willfong/employeedb/internal/utils"
)

const (
	// DefaultMinAgeDays is the youngest generated age, 18 years of 365 days
	DefaultMinAgeDays = 18 * 365

	// DefaultMaxAgeDays is the oldest generated age, 65 years of 365 days
	DefaultMaxAgeDays = 65 * 365

	// ProgressInterval is how many records are generated between progress callbacks
	ProgressInterval = 10000
)

// EmployeeGenerator creates synthetic employees from name vocabularies.
type EmployeeGenerator struct {
	rng    *utils.Random
	config EmployeeGeneratorConfig
}

// EmployeeGeneratorConfig holds settings for employee generation
type EmployeeGeneratorConfig struct {
	// BaseDate is "now" for birth date calculations (zero = time.Now())
	BaseDate time.Time
	// Age band used by GenerateSpecial, in days before BaseDate
	MinAgeDays int
	MaxAgeDays int
	// OnProgress is called every ProgressInterval records and once at the end
	OnProgress func(done, total int)
}

// NewEmployeeGenerator creates a new employee generator
func NewEmployeeGenerator(rng *utils.Random, config EmployeeGeneratorConfig) *EmployeeGenerator {
	if config.MinAgeDays <= 0 {
		config.MinAgeDays = DefaultMinAgeDays
	}
	if config.MaxAgeDays < config.MinAgeDays {
		config.MaxAgeDays = DefaultMaxAgeDays
	}
	return &EmployeeGenerator{
		rng:    rng,
		config: config,
	}
}

// GenerateBulk creates count employees. Name parts and gender are drawn
// uniformly with replacement; birth dates fall between minAgeDays and
// maxAgeDays whole days before the base date.
func (g *EmployeeGenerator) GenerateBulk(count int, lastNames, firstNames []string, genders []models.Gender, minAgeDays, maxAgeDays int) []models.Employee {
	if count <= 0 || len(lastNames) == 0 || len(firstNames) == 0 || len(genders) == 0 {
		return []models.Employee{}
	}

	base := g.baseDate()
	employees := make([]models.Employee, 0, count)

	for i := 0; i < count; i++ {
		employees = append(employees, models.Employee{
			FullName:  g.fullName(lastNames, firstNames),
			BirthDate: g.rng.DaysBefore(base, minAgeDays, maxAgeDays),
			Gender:    utils.Pick(g.rng, genders),
		})
		g.reportProgress(i+1, count)
	}

	return employees
}

// GenerateSpecial creates count male employees whose surnames come only
// from specialLastNames. Birth dates use the configured age band.
func (g *EmployeeGenerator) GenerateSpecial(count int, specialLastNames, firstNames []string) []models.Employee {
	return g.GenerateBulk(count, specialLastNames, firstNames,
		[]models.Gender{models.GenderMale},
		g.config.MinAgeDays, g.config.MaxAgeDays)
}

// fullName builds a "Surname Firstname" name
func (g *EmployeeGenerator) fullName(lastNames, firstNames []string) string {
	return g.rng.PickString(lastNames) + " " + g.rng.PickString(firstNames)
}

func (g *EmployeeGenerator) baseDate() time.Time {
	if g.config.BaseDate.IsZero() {
		return time.Now()
	}
	return g.config.BaseDate
}

func (g *EmployeeGenerator) reportProgress(done, total int) {
	if g.config.OnProgress == nil {
		return
	}
	if done%ProgressInterval == 0 || done == total {
		g.config.OnProgress(done, total)
	}
}
