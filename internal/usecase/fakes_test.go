package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces. The review fake applies
// the same filter semantics the SQL query does, so service tests exercise
// the full listing contract without a database.

type fakeStore struct {
	users   map[uuid.UUID]*entity.User
	movies  map[uuid.UUID]*entity.Movie
	reviews []*entity.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[uuid.UUID]*entity.User),
		movies: make(map[uuid.UUID]*entity.Movie),
	}
}

func (s *fakeStore) repos() *repository.Repository {
	return &repository.Repository{
		User:   &fakeUserRepo{store: s},
		Movie:  &fakeMovieRepo{store: s},
		Review: &fakeReviewRepo{store: s},
	}
}

// ---------- users ----------

type fakeUserRepo struct {
	store *fakeStore
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.store.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range f.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	all := make([]*entity.User, 0, len(f.store.users))
	for _, user := range f.store.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.store.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.store.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store.users, id)
	return nil
}

// ---------- movies ----------

type fakeMovieRepo struct {
	store *fakeStore
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.store.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.store.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Movie, error) {
	var all []*entity.Movie
	for _, movie := range f.store.movies {
		if search == "" || containsFold(movie.Title, search) || containsFold(movie.Genre, search) {
			all = append(all, movie)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, search string) (int64, error) {
	movies, _ := f.FindAll(context.Background(), search, len(f.store.movies)+1, 0)
	return int64(len(movies)), nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	f.store.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store.movies, id)
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	store *fakeStore

	findAllCalls int
	lastFilter   repository.ReviewFilter
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	f.store.reviews = append(f.store.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.store.reviews {
		if review.ID == id && review.UserID == userID {
			return review, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) matches(review *entity.Review, filter repository.ReviewFilter) bool {
	movie := f.store.movies[review.MovieID]
	title := ""
	if movie != nil {
		title = movie.Title
	}

	if filter.MovieID != nil && review.MovieID != *filter.MovieID {
		return false
	}
	if filter.MovieTitle != "" && !containsFold(title, filter.MovieTitle) {
		return false
	}
	if filter.Rating != nil && review.Rating != *filter.Rating {
		return false
	}
	if filter.Search != "" {
		ratingText := strconv.Itoa(review.Rating)
		if !containsFold(title, filter.Search) && !strings.Contains(ratingText, filter.Search) {
			return false
		}
	}
	return true
}

func (f *fakeReviewRepo) filtered(filter repository.ReviewFilter) []*entity.Review {
	var out []*entity.Review
	for _, review := range f.store.reviews {
		if f.matches(review, filter) {
			out = append(out, review)
		}
	}

	if filter.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			switch filter.OrderBy {
			case "rating":
				if filter.Descending {
					return a.Rating > b.Rating
				}
				return a.Rating < b.Rating
			default:
				if filter.Descending {
					return a.CreatedAt.After(b.CreatedAt)
				}
				return a.CreatedAt.Before(b.CreatedAt)
			}
		})
	}

	return out
}

func (f *fakeReviewRepo) FindAll(_ context.Context, filter repository.ReviewFilter) ([]*entity.ReviewWithRefs, error) {
	f.findAllCalls++
	f.lastFilter = filter

	page := paginate(f.filtered(filter), filter.Limit, filter.Offset)

	out := make([]*entity.ReviewWithRefs, 0, len(page))
	for _, review := range page {
		refs := &entity.ReviewWithRefs{Review: *review}
		if movie := f.store.movies[review.MovieID]; movie != nil {
			refs.MovieTitle = movie.Title
		}
		if user := f.store.users[review.UserID]; user != nil {
			refs.Username = user.Username
		}
		out = append(out, refs)
	}
	return out, nil
}

func (f *fakeReviewRepo) CountAll(_ context.Context, filter repository.ReviewFilter) (int64, error) {
	return int64(len(f.filtered(filter))), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, existing := range f.store.reviews {
		if existing.ID == review.ID {
			f.store.reviews[i] = review
			return nil
		}
	}
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, review := range f.store.reviews {
		if review.ID == id {
			f.store.reviews = append(f.store.reviews[:i], f.store.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------- helpers ----------

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
