package testdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

// Upserter stores clients.
type Upserter interface {
	Upsert(ctx context.Context, c clients.Client) error
}

var (
	firstNames = []string{"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Isla", "Oscar", "Ruby", "Leo"}
	lastNames  = []string{"Nguyen", "Smith", "Patel", "Garcia", "Kowalski", "Okafor", "Rossi", "Tanaka"}
	companies  = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Hooli", "Vandelay"}
	suffixes   = []string{"Pty Ltd", "Group", "Holdings", "Labs", "Partners"}
	editors    = []string{"admin", "j.doe", "m.lee", "ops-bot"}
)

// Clients returns n sample clients. The same seed always yields the same
// records; timestamps are spread over the year before now.
func Clients(n int, now time.Time, seed uint64) []clients.Client {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]clients.Client, 0, n)
	for i := 1; i <= n; i++ {
		c := clients.Client{
			ID:        fmt.Sprintf("CL-%04d", i),
			Status:    clients.StatusActive,
			UpdatedBy: editors[r.IntN(len(editors))],
		}
		if r.IntN(10) < 3 {
			c.Status = clients.StatusInactive
		}
		if r.IntN(2) == 0 {
			c.Type = clients.TypeIndividual
			first, last := firstNames[r.IntN(len(firstNames))], lastNames[r.IntN(len(lastNames))]
			c.Name = first + " " + last
			c.Email = strings.ToLower(first+"."+last) + "@example.com"
		} else {
			c.Type = clients.TypeCompany
			name := companies[r.IntN(len(companies))]
			c.Name = name + " " + suffixes[r.IntN(len(suffixes))]
			c.Email = "hello@" + strings.ToLower(name) + ".example"
		}
		c.CreatedAt = now.Add(-time.Duration(r.IntN(365*24)) * time.Hour).UTC().Truncate(time.Second)
		c.UpdatedAt = c.CreatedAt.Add(time.Duration(r.IntN(30*24)) * time.Hour)
		if c.UpdatedAt.After(now) {
			c.UpdatedAt = now.UTC().Truncate(time.Second)
		}
		out = append(out, c)
	}
	return out
}

// Seed writes n sample clients through repo.
func Seed(ctx context.Context, repo Upserter, n int, now time.Time, seed uint64) error {
	for _, c := range Clients(n, now, seed) {
		if err := repo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
	}
	return nil
}
