// Package importer bulk-loads the platform's seed data from a directory of
// CSV files. Files are loaded in dependency order, every row is validated
// against the declared column schema, and rows that fail validation are
// logged and skipped instead of aborting the whole load.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

type Importer struct {
	db  *gorm.DB
	log *zap.Logger

	// CSV files carry integer user ids; users get fresh uuids on insert,
	// so reviews and comments need the remapping
	userIDs map[int64]string

	categoryIDs map[int64]struct{}
	genreIDs    map[int64]struct{}
	titleIDs    map[int64]struct{}
	reviewIDs   map[int64]struct{}
}

func New(db *gorm.DB, log *zap.Logger) *Importer {
	return &Importer{
		db:          db,
		log:         log,
		userIDs:     make(map[int64]string),
		categoryIDs: make(map[int64]struct{}),
		genreIDs:    make(map[int64]struct{}),
		titleIDs:    make(map[int64]struct{}),
		reviewIDs:   make(map[int64]struct{}),
	}
}

// Run loads every known file from dir. Missing files are skipped with a
// warning so partial data sets still load.
func (im *Importer) Run(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		load func(ctx context.Context, path string) error
	}{
		{"category.csv", im.importCategories},
		{"genre.csv", im.importGenres},
		{"users.csv", im.importUsers},
		{"titles.csv", im.importTitles},
		{"genre_title.csv", im.importTitleGenres},
		{"review.csv", im.importReviews},
		{"comments.csv", im.importComments},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			im.log.Warn("import file missing, skipping", zap.String("file", step.file))
			continue
		}
		if err := step.load(ctx, path); err != nil {
			return fmt.Errorf("import %s: %w", step.file, err)
		}
	}
	return nil
}

// readRows opens a CSV file, checks its header against the declared schema
// and returns the data rows.
func (im *Importer) readRows(path string, schema []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(schema)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range schema {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected header: got %v, want %v", header, schema)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func (im *Importer) skip(file string, row []string, reason string) {
	im.log.Warn("skipping invalid row",
		zap.String("file", file),
		zap.Strings("row", row),
		zap.String("reason", reason),
	)
}

func (im *Importer) importCategories(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "name", "slug"})
	if err != nil {
		return err
	}

	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("category.csv", row, "non-integer id")
			continue
		}
		if row[1] == "" || row[2] == "" {
			im.skip("category.csv", row, "empty name or slug")
			continue
		}
		categories = append(categories, models.Category{ID: id, Name: row[1], Slug: row[2]})
		im.categoryIDs[id] = struct{}{}
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&categories, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported categories", zap.Int("count", len(categories)))
	return nil
}

func (im *Importer) importGenres(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "name", "slug"})
	if err != nil {
		return err
	}

	genres := make([]models.Genre, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("genre.csv", row, "non-integer id")
			continue
		}
		if row[1] == "" || row[2] == "" {
			im.skip("genre.csv", row, "empty name or slug")
			continue
		}
		genres = append(genres, models.Genre{ID: id, Name: row[1], Slug: row[2]})
		im.genreIDs[id] = struct{}{}
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&genres, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported genres", zap.Int("count", len(genres)))
	return nil
}

func (im *Importer) importUsers(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "username", "email", "role", "bio", "first_name", "last_name"})
	if err != nil {
		return err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("users.csv", row, "non-integer id")
			continue
		}
		if row[1] == "" || row[2] == "" {
			im.skip("users.csv", row, "empty username or email")
			continue
		}
		role := row[3]
		if role != "user" && role != "moderator" && role != "admin" {
			im.skip("users.csv", row, "unknown role")
			continue
		}

		uid := uuid.New().String()
		users = append(users, models.User{
			ID:        uid,
			Username:  row[1],
			Email:     row[2],
			Role:      role,
			Bio:       row[4],
			FirstName: row[5],
			LastName:  row[6],
		})
		im.userIDs[id] = uid
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&users, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported users", zap.Int("count", len(users)))
	return nil
}

func (im *Importer) importTitles(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "name", "year", "category"})
	if err != nil {
		return err
	}

	titles := make([]models.Title, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("titles.csv", row, "non-integer id")
			continue
		}
		if row[1] == "" {
			im.skip("titles.csv", row, "empty name")
			continue
		}
		year, err := strconv.Atoi(row[2])
		if err != nil {
			im.skip("titles.csv", row, "non-integer year")
			continue
		}
		categoryID, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			im.skip("titles.csv", row, "non-integer category")
			continue
		}
		if _, ok := im.categoryIDs[categoryID]; !ok {
			im.skip("titles.csv", row, "unknown category")
			continue
		}

		titles = append(titles, models.Title{
			ID:         id,
			Name:       row[1],
			Year:       year,
			CategoryID: &categoryID,
		})
		im.titleIDs[id] = struct{}{}
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&titles, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported titles", zap.Int("count", len(titles)))
	return nil
}

func (im *Importer) importTitleGenres(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "title_id", "genre_id"})
	if err != nil {
		return err
	}

	links := make([]models.TitleGenre, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("genre_title.csv", row, "non-integer id")
			continue
		}
		titleID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			im.skip("genre_title.csv", row, "non-integer title_id")
			continue
		}
		genreID, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			im.skip("genre_title.csv", row, "non-integer genre_id")
			continue
		}
		if _, ok := im.titleIDs[titleID]; !ok {
			im.skip("genre_title.csv", row, "unknown title")
			continue
		}
		if _, ok := im.genreIDs[genreID]; !ok {
			im.skip("genre_title.csv", row, "unknown genre")
			continue
		}

		links = append(links, models.TitleGenre{ID: id, TitleID: titleID, GenreID: &genreID})
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&links, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported title-genre links", zap.Int("count", len(links)))
	return nil
}

func (im *Importer) importReviews(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "title_id", "text", "author", "score", "pub_date"})
	if err != nil {
		return err
	}

	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("review.csv", row, "non-integer id")
			continue
		}
		titleID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			im.skip("review.csv", row, "non-integer title_id")
			continue
		}
		if _, ok := im.titleIDs[titleID]; !ok {
			im.skip("review.csv", row, "unknown title")
			continue
		}
		authorID, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			im.skip("review.csv", row, "non-integer author")
			continue
		}
		authorUUID, ok := im.userIDs[authorID]
		if !ok {
			im.skip("review.csv", row, "unknown author")
			continue
		}
		score, err := strconv.Atoi(row[4])
		if err != nil || score < 0 || score > 10 {
			im.skip("review.csv", row, "score out of range")
			continue
		}
		pubDate, err := time.Parse(time.RFC3339, row[5])
		if err != nil {
			im.skip("review.csv", row, "invalid pub_date")
			continue
		}

		reviews = append(reviews, models.Review{
			ID:       id,
			TitleID:  titleID,
			AuthorID: authorUUID,
			Text:     row[2],
			Score:    score,
			PubDate:  pubDate,
		})
		im.reviewIDs[id] = struct{}{}
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&reviews, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported reviews", zap.Int("count", len(reviews)))
	return nil
}

func (im *Importer) importComments(ctx context.Context, path string) error {
	rows, err := im.readRows(path, []string{"id", "review_id", "text", "author", "pub_date"})
	if err != nil {
		return err
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.skip("comments.csv", row, "non-integer id")
			continue
		}
		reviewID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			im.skip("comments.csv", row, "non-integer review_id")
			continue
		}
		if _, ok := im.reviewIDs[reviewID]; !ok {
			im.skip("comments.csv", row, "unknown review")
			continue
		}
		authorID, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			im.skip("comments.csv", row, "non-integer author")
			continue
		}
		authorUUID, ok := im.userIDs[authorID]
		if !ok {
			im.skip("comments.csv", row, "unknown author")
			continue
		}
		pubDate, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			im.skip("comments.csv", row, "invalid pub_date")
			continue
		}

		comments = append(comments, models.Comment{
			ID:       id,
			ReviewID: reviewID,
			AuthorID: authorUUID,
			Text:     row[2],
			PubDate:  pubDate,
		})
	}

	if err := im.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&comments, batchSize).Error; err != nil {
		return err
	}
	im.log.Info("imported comments", zap.Int("count", len(comments)))
	return nil
}
