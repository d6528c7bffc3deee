package seeder

import (
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
)

// ContactProvider supplies the raw name and contact fields of a passenger.
// Implementations own their randomness so runs stay reproducible.
type ContactProvider interface {
	FirstName() string
	LastName() string
	EmailDomain() string
	Phone() string
}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Emily",
	"James", "Jessica", "William", "Ashley", "Christopher", "Amanda", "Daniel",
	"Melissa", "Matthew", "Deborah", "Anthony", "Dorothy", "Mark", "Amy",
	"Donald", "Angela", "Steven", "Helen", "Paul", "Brenda", "Andrew", "Emma",
	"Joshua", "Olivia", "Kenneth", "Cynthia", "Kevin", "Marie", "Brian",
	"Janet", "George", "Catherine", "Timothy", "Frances", "Ronald", "Christine",
	"Jason", "Samantha", "Edward", "Debra", "Jeffrey", "Rachel",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts",
}

var freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com"}

const DefaultEmailDomain = "airline-demo.com"

// PoolProvider draws from fixed name pools.
type PoolProvider struct {
	rand   *rand.Rand
	domain string
}

func NewPoolProvider(r *rand.Rand, domain string) *PoolProvider {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return &PoolProvider{rand: r, domain: domain}
}

func (p *PoolProvider) FirstName() string {
	return firstNames[p.rand.Intn(len(firstNames))]
}

func (p *PoolProvider) LastName() string {
	return lastNames[p.rand.Intn(len(lastNames))]
}

func (p *PoolProvider) EmailDomain() string {
	return p.domain
}

func (p *PoolProvider) Phone() string {
	return canonicalPhone(p.rand)
}

// FakerProvider wraps its own seeded gofakeit instance; the package-level
// gofakeit functions are never touched.
type FakerProvider struct {
	faker   *gofakeit.Faker
	domains []string
}

func NewFakerProvider(seed uint64) *FakerProvider {
	return &FakerProvider{
		faker:   gofakeit.New(seed),
		domains: freeEmailDomains,
	}
}

func (p *FakerProvider) FirstName() string {
	return p.faker.FirstName()
}

func (p *FakerProvider) LastName() string {
	return p.faker.LastName()
}

func (p *FakerProvider) EmailDomain() string {
	return p.faker.RandomString(p.domains)
}

func (p *FakerProvider) Phone() string {
	return p.faker.PhoneFormatted()
}

// canonicalPhone renders +1-NXX-NXX-XXXX.
func canonicalPhone(r *rand.Rand) string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", 100+r.Intn(900), 100+r.Intn(900), 1000+r.Intn(9000))
}
