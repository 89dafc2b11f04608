package feed

import (
	"context"
	"sort"
	"strings"
	"time"

	"aerohub/internal/middleware"
	"aerohub/internal/models"
	"aerohub/internal/observability"
	"aerohub/internal/repository"
	"aerohub/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Sort orders accepted by Browse.
const (
	SortPopular   = "popular"
	SortLatest    = "latest"
	SortMostLiked = "most-liked"
)

// fallbackAuthorName labels posts whose author lookup failed or whose
// account is gone.
const fallbackAuthorName = "User"

// enrichConcurrency bounds the signed-URL fan-out per page.
const enrichConcurrency = 8

// Query is one feed request after transport decoding.
type Query struct {
	// Search matches case-insensitively as a substring against title,
	// description, vehicle names, and vehicle type labels.
	Search string
	// VehicleTypes filters with OR semantics: a post matches when any of
	// its types appears in this list.
	VehicleTypes []string
	// Sort is one of SortPopular, SortLatest, SortMostLiked. Unrecognized
	// values fall back to SortPopular.
	Sort string
	// Limit is the requested page size, clamped to the engine maximum.
	Limit int
	// Cursor is the opaque pagination token from a previous page.
	Cursor string
	// AuthorID restricts the feed to one author. Mutually exclusive with
	// FavoritesUserID in practice.
	AuthorID uint
	// FavoritesUserID restricts the feed to posts that user favorited.
	FavoritesUserID uint
}

// PostSummary is one feed entry. ThumbnailURL is empty when the post has no
// images or signing failed; the feed never fails over a thumbnail.
type PostSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Vehicles      []string  `json:"vehicles"`
	VehicleTypes  []string  `json:"vehicle_types"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	AuthorID      uint      `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	LikeCount     int       `json:"like_count"`
	FavoriteCount int       `json:"favorite_count"`
	LiveryCount   int       `json:"livery_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Page is one browse response.
type Page struct {
	Posts      []PostSummary `json:"posts"`
	HasMore    bool          `json:"has_more"`
	NextCursor *string       `json:"next_cursor"`
	TotalCount int           `json:"total_count"`
}

// Options tune the engine. Zero values take the documented defaults.
type Options struct {
	// FetchCap bounds the pre-filter candidate fetch.
	FetchCap int
	// MaxPageSize clamps client-supplied limits.
	MaxPageSize int
	// DefaultPageSize applies when the client sends no limit.
	DefaultPageSize int
}

func (o *Options) fill() {
	if o.FetchCap <= 0 {
		o.FetchCap = 500
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 100
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 20
	}
}

// Engine resolves feed queries. Filtering happens in memory after a capped,
// index-ordered candidate fetch; the cap is an explicit scalability ceiling
// surfaced by the candidates-fetched metric.
type Engine struct {
	posts repository.PostRepository
	users repository.UserRepository
	store storage.ObjectStore
	opts  Options
}

// NewEngine builds a feed engine over the given repositories and object
// store.
func NewEngine(posts repository.PostRepository, users repository.UserRepository, store storage.ObjectStore, opts Options) *Engine {
	opts.fill()
	return &Engine{posts: posts, users: users, store: store, opts: opts}
}

// Browse executes one feed query: candidate fetch, in-memory filter and
// sort, cursor slice, then concurrent enrichment of the page.
func (e *Engine) Browse(ctx context.Context, q Query) (*Page, error) {
	span, ctx := observability.NewSpan(ctx, "feed.Browse")
	defer span.End()

	sortOrder := normalizeSort(q.Sort)
	limit := q.Limit
	if limit <= 0 {
		limit = e.opts.DefaultPageSize
	}
	if limit > e.opts.MaxPageSize {
		limit = e.opts.MaxPageSize
	}

	scope := repository.CandidateScope{
		AuthorID:        q.AuthorID,
		FavoritesUserID: q.FavoritesUserID,
		Cap:             e.opts.FetchCap,
	}
	// Global latest and most-liked browses ride their single-column index
	// so the cap keeps the top rows. Popular has no backing index, and
	// scoped sets are small enough to sort in memory regardless.
	preOrdered := false
	if scope.Global() {
		switch sortOrder {
		case SortLatest:
			scope.OrderBy = repository.OrderLatest
			preOrdered = true
		case SortMostLiked:
			scope.OrderBy = repository.OrderMostLiked
			preOrdered = true
		}
	}

	candidates, err := e.posts.ListCandidates(ctx, scope)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.FeedCandidatesFetched.WithLabelValues(scopeLabel(scope)).Observe(float64(len(candidates)))

	if !preOrdered {
		sortPosts(candidates, sortOrder)
	}

	filtered := filterPosts(candidates, q.VehicleTypes, q.Search)

	offset := DecodeCursor(q.Cursor)
	total := len(filtered)
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}
	window := filtered[offset:end]

	hasMore := offset+limit < total
	var next *string
	if hasMore {
		c := EncodeCursor(offset + limit)
		next = &c
	}

	posts, err := e.enrich(ctx, window)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &Page{
		Posts:      posts,
		HasMore:    hasMore,
		NextCursor: next,
		TotalCount: total,
	}, nil
}

func normalizeSort(s string) string {
	switch s {
	case SortLatest, SortMostLiked:
		return s
	default:
		return SortPopular
	}
}

func scopeLabel(s repository.CandidateScope) string {
	switch {
	case s.AuthorID != 0:
		return "author"
	case s.FavoritesUserID != 0:
		return "favorites"
	default:
		return "global"
	}
}

// sortPosts orders candidates in place. Stable so equal-ranked posts keep
// their fetch order across pages.
func sortPosts(posts []models.Post, sortOrder string) {
	switch sortOrder {
	case SortLatest:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	case SortMostLiked:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].LikeCount != posts[j].LikeCount {
				return posts[i].LikeCount > posts[j].LikeCount
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			if posts[i].Popularity() != posts[j].Popularity() {
				return posts[i].Popularity() > posts[j].Popularity()
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// filterPosts applies the vehicle-type filter, then the search filter.
// Order preserved.
func filterPosts(posts []models.Post, vehicleTypes []string, search string) []models.Post {
	out := posts
	if len(vehicleTypes) > 0 {
		wanted := make(map[string]struct{}, len(vehicleTypes))
		for _, vt := range vehicleTypes {
			wanted[vt] = struct{}{}
		}
		filtered := make([]models.Post, 0, len(out))
		for _, p := range out {
			for _, vt := range p.VehicleTypeList() {
				if _, ok := wanted[vt]; ok {
					filtered = append(filtered, p)
					break
				}
			}
		}
		out = filtered
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]models.Post, 0, len(out))
		for _, p := range out {
			if matchesSearch(&p, needle) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}
	return out
}

// matchesSearch reports whether needle (already lowercased) appears in any
// of the post's searchable text fields.
func matchesSearch(p *models.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, v := range p.VehicleList() {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	for _, vt := range p.VehicleTypeList() {
		if strings.Contains(strings.ToLower(vt), needle) {
			return true
		}
	}
	return false
}

// enrich resolves thumbnails and author names for one page. Thumbnail
// signing runs as a bounded concurrent fan-out; a signing failure leaves
// the URL empty rather than failing the page.
func (e *Engine) enrich(ctx context.Context, window []models.Post) ([]PostSummary, error) {
	summaries := make([]PostSummary, len(window))

	missing := make([]uint, 0)
	seen := make(map[uint]struct{})
	for i := range window {
		if window[i].Author.ID == 0 {
			if _, dup := seen[window[i].AuthorID]; !dup {
				seen[window[i].AuthorID] = struct{}{}
				missing = append(missing, window[i].AuthorID)
			}
		}
	}
	authors := map[uint]*models.User{}
	if len(missing) > 0 {
		// Author rows missing from the candidate preload (stale cache,
		// deleted accounts). Lookup failure degrades to the fallback name.
		if byID, err := e.users.GetByIDs(ctx, missing); err == nil {
			authors = byID
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range window {
		i := i
		g.Go(func() error {
			p := &window[i]

			name := p.Author.Name()
			if p.Author.ID == 0 {
				if u, ok := authors[p.AuthorID]; ok {
					name = u.Name()
				} else {
					name = fallbackAuthorName
				}
			}
			if name == "" {
				name = fallbackAuthorName
			}

			var thumb string
			if keys := p.ImageKeys; len(keys) > 0 {
				url, err := e.store.PresignGet(gctx, keys[0], storage.ThumbnailURLTTL)
				if err == nil {
					thumb = url
				}
			}

			summaries[i] = PostSummary{
				ID:            p.ID,
				Title:         p.Title,
				Description:   p.Description,
				Vehicles:      p.VehicleList(),
				VehicleTypes:  p.VehicleTypeList(),
				ThumbnailURL:  thumb,
				AuthorID:      p.AuthorID,
				AuthorName:    name,
				LikeCount:     p.LikeCount,
				FavoriteCount: p.FavoriteCount,
				LiveryCount:   p.LiveryCount,
				CreatedAt:     p.CreatedAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
