package seeder

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/airseed/internal/types"
)

const (
	maxNameLen  = 50
	maxEmailLen = 100
	maxPhoneLen = 20

	DefaultMaxEmailRetries = 50
)

type PassengerGenerator struct {
	Provider ContactProvider
	// Rand backs the canonical phone used when the provider's is unusable.
	Rand *rand.Rand
	// Indexed appends the passenger index to every email local part.
	Indexed         bool
	MaxEmailRetries int
}

// Generate returns count passengers with ids 1..count and pairwise distinct
// emails. The used-email set lives only for this call.
func (g *PassengerGenerator) Generate(count int) ([]types.Passenger, error) {
	if count < 0 {
		return nil, fmt.Errorf("passengers: %w (%d)", ErrNegativeCount, count)
	}

	retries := g.MaxEmailRetries
	if retries <= 0 {
		retries = DefaultMaxEmailRetries
	}

	used := make(map[string]struct{}, count)
	passengers := make([]types.Passenger, 0, count)

	for i := 1; i <= count; i++ {
		first := truncate(g.Provider.FirstName(), maxNameLen)
		last := truncate(g.Provider.LastName(), maxNameLen)
		domain := g.Provider.EmailDomain()

		email := g.uniqueEmail(used, emailLocal(first, last), domain, i, retries)
		used[email] = struct{}{}

		phone := g.Provider.Phone()
		if phone == "" || len(phone) > maxPhoneLen {
			phone = canonicalPhone(g.Rand)
		}

		passengers = append(passengers, types.Passenger{
			ID:        int64(i),
			FirstName: first,
			LastName:  last,
			Email:     email,
			Phone:     phone,
		})
	}
	return passengers, nil
}

func (g *PassengerGenerator) uniqueEmail(used map[string]struct{}, local, domain string, index, retries int) string {
	// Leave room for the widest suffix so no candidate outgrows the column.
	room := maxEmailLen - len(domain) - 1 - len(strconv.Itoa(index)) - len(strconv.Itoa(retries)) - 2
	if room < 1 {
		domain = DefaultEmailDomain
		room = maxEmailLen - len(domain) - 1 - len(strconv.Itoa(index)) - len(strconv.Itoa(retries)) - 2
	}
	local = truncate(local, room)

	base := local
	if g.Indexed {
		base = local + strconv.Itoa(index)
	}

	candidate := base + "@" + domain
	if _, taken := used[candidate]; !taken {
		return candidate
	}
	for n := 1; n <= retries; n++ {
		sep := ""
		if g.Indexed {
			sep = "_"
		}
		candidate = fmt.Sprintf("%s%s%d@%s", base, sep, n, domain)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}

	// Only this branch emits '+', and index is unique within the run.
	return fmt.Sprintf("%s+%d@%s", local, index, domain)
}

// emailLocal builds first.last from ASCII letters only.
func emailLocal(first, last string) string {
	f, l := lettersOnly(first), lettersOnly(last)
	if f == "" {
		f = "passenger"
	}
	if l == "" {
		l = "traveler"
	}
	return f + "." + l
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(string(runes)) > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
