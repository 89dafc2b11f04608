// Package seed creates demo and test data for the application database.
// Development and local environments only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"aerohub/internal/models"
	"aerohub/internal/vehicles"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// airlineWords feed livery titles so the demo feed reads like the real
// community instead of pure lorem ipsum.
var airlineWords = []string{
	"Classic", "Retro", "Heritage", "Sunset", "Polar", "Oceanic",
	"Cargo", "Express", "Star", "Royal", "Pacific", "Alpine",
	"Metro", "Coastal", "Horizon", "Aurora", "Trans", "Skyline",
}

var liveryParts = []string{
	"Fuselage", "Tail", "Wing", "Engine", "Nose", "Body", "Stripe", "Logo",
}

// Factory builds domain entities and persists them. Seed presets and
// tests use it directly.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a Factory bound to the given database handle.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a usable password ("password123!AB"
// for every seeded account, so demo logins work).
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123!AB"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	base := sanitizeUsername(strings.ToLower(gofakeit.Username()))
	if len(base) > 28 {
		base = base[:28]
	}
	user := &models.User{
		Username:     fmt.Sprintf("%s%d", base, f.rng.Intn(10000)),
		DisplayName:  gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
	}
	for _, o := range overrides {
		o(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// BuildPost constructs an unpersisted post with realistic vehicles,
// liveries, and a created_at spread over the past maxDays days.
func (f *Factory) BuildPost(author *models.User, maxDays int) *models.Post {
	names := vehicles.Names()
	vehicleCount := 1 + f.rng.Intn(3)
	picked := make([]string, 0, vehicleCount)
	seen := make(map[string]struct{}, vehicleCount)
	for len(picked) < vehicleCount {
		n := names[f.rng.Intn(len(names))]
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		picked = append(picked, n)
	}

	liveryCount := 1 + f.rng.Intn(3)
	liveries := make([]models.Livery, 0, liveryCount)
	for i := 0; i < liveryCount; i++ {
		liveries = append(liveries, f.buildLivery())
	}

	imageCount := 1 + f.rng.Intn(4)
	imageKeys := make([]string, 0, imageCount)
	for i := 0; i < imageCount; i++ {
		imageKeys = append(imageKeys, fmt.Sprintf("uploads/%d/%s.webp", author.ID, gofakeit.UUID()))
	}

	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute

	return &models.Post{
		Title:        f.postTitle(picked[0]),
		Description:  gofakeit.Paragraph(1, 2, 8, " "),
		Vehicles:     picked,
		VehicleTypes: vehicles.TypesOf(picked),
		ImageKeys:    imageKeys,
		AuthorID:     author.ID,
		Liveries:     liveries,
		CreatedAt:    time.Now().Add(-age),
	}
}

func (f *Factory) buildLivery() models.Livery {
	kvCount := 1 + f.rng.Intn(4)
	kvs := make([]models.LiveryKeyValue, 0, kvCount)
	for i := 0; i < kvCount; i++ {
		kvs = append(kvs, models.LiveryKeyValue{
			Key:   liveryParts[f.rng.Intn(len(liveryParts))],
			Value: fmt.Sprintf("%d", 10000+f.rng.Intn(9_000_000)),
		})
	}
	title := fmt.Sprintf("%s %s", gofakeit.Company(), airlineWords[f.rng.Intn(len(airlineWords))])
	if len(title) > 50 {
		title = title[:50]
	}
	return models.Livery{
		Title:     title,
		KeyValues: kvs,
	}
}

func (f *Factory) postTitle(vehicle string) string {
	title := fmt.Sprintf("%s %s %s",
		gofakeit.Company(),
		airlineWords[f.rng.Intn(len(airlineWords))],
		vehicle)
	if len(title) > 80 {
		title = title[:80]
	}
	return title
}

// sanitizeUsername strips characters the account validator rejects.
func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	if b.Len() < 3 {
		return "pilot"
	}
	return b.String()
}
