package mongodb

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
	mediaService "github.com/fhuszti/blog-media-go/internal/usecase/media"
)

const collectionName = "media_assets"

type MediaRepository struct {
	col *mongo.Collection
}

// compile-time check: *MediaRepository must satisfy port.MediaRepository
var _ port.MediaRepository = (*MediaRepository)(nil)

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the indexes the registry relies on; the file-name
// index backs the global uniqueness guarantee.
func (r *MediaRepository) EnsureIndexes(ctx context.Context) error {
	log.Println("ensuring indexes on the media collection...")

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "file_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "url", Value: 1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}, {Key: "folder", Value: 1}}},
	})
	return err
}

func (r *MediaRepository) Create(ctx context.Context, media *model.Media) error {
	log.Printf("creating registry record for media %q (file %q)...", media.ID, media.FileName)

	now := time.Now().UTC()
	if media.CreatedAt.IsZero() {
		media.CreatedAt = now
	}
	media.UpdatedAt = now
	if media.UsedIn == nil {
		media.UsedIn = []model.UsageRef{}
	}
	media.UsageCount = len(media.UsedIn)

	if _, err := r.col.InsertOne(ctx, media); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return mediaService.ErrDuplicateFileName
		}
		return err
	}
	return nil
}

// Update persists editable metadata only; usage mutations go through
// AddUsage/RemoveUsage so concurrent reference changes are never clobbered.
func (r *MediaRepository) Update(ctx context.Context, media *model.Media) error {
	log.Printf("updating registry record for media %q...", media.ID)

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": media.ID},
		bson.M{"$set": bson.M{
			"alt_text":   media.AltText,
			"caption":    media.Caption,
			"folder":     media.Folder,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mediaService.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (*model.Media, error) {
	log.Printf("fetching media %q from the registry...", id)

	var m model.Media
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mediaService.ErrMediaNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) GetByURL(ctx context.Context, url string) (*model.Media, error) {
	var m model.Media
	err := r.col.FindOne(ctx, bson.M{"url": url, "deleted_at": nil}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mediaService.ErrMediaNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) GetManyByIDs(ctx context.Context, ids []string) ([]*model.Media, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "deleted_at": nil})
	if err != nil {
		return nil, err
	}
	var medias []*model.Media
	if err := cur.All(ctx, &medias); err != nil {
		return nil, err
	}
	return medias, nil
}

func (r *MediaRepository) List(ctx context.Context, filter port.ListFilter, opts port.ListOptions) ([]*model.Media, int64, error) {
	log.Printf("listing medias (folder=%q mime=%q search=%q)...", filter.Folder, filter.MimePrefix, filter.Search)

	query := buildListFilter(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page, limit := normalisePage(opts.Page, opts.Limit)
	findOpts := options.Find().
		SetSort(buildSort(opts)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	medias := []*model.Media{}
	if err := cur.All(ctx, &medias); err != nil {
		return nil, 0, err
	}
	return medias, total, nil
}

// SoftDelete marks the record deleted, conditional on the usage list being
// empty at the moment the update applies so a racing reference cannot slip
// past the deletion guard.
func (r *MediaRepository) SoftDelete(ctx context.Context, id string) error {
	log.Printf("soft-deleting media %q...", id)

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil, "usage_count": 0},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// figure out why the conditional write missed
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.IsDeleted() {
		return mediaService.ErrMediaNotFound
	}
	return &mediaService.InUseError{ID: m.ID, Refs: m.UsedIn}
}

func (r *MediaRepository) Restore(ctx context.Context, id string) error {
	log.Printf("restoring media %q...", id)

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": bson.M{"$ne": nil}},
		bson.M{"$set": bson.M{"deleted_at": nil, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mediaService.ErrMediaNotFound
	}
	return nil
}

// AddUsage unions the reference into the usage list and recomputes the
// denormalised count in the same single-document update, so concurrent
// registrations on one asset can never lose entries or drift the count.
// Registering a reference already present is a no-op. Soft-deleted records
// match no filter and accept no usage.
func (r *MediaRepository) AddUsage(ctx context.Context, id string, ref model.UsageRef) error {
	log.Printf("registering usage %s:%s on media %q...", ref.Model, ref.RefID, id)

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": nil},
		mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{{Key: "used_in", Value: bson.D{{Key: "$setUnion", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$used_in", bson.A{}}}},
				bson.A{bson.D{{Key: "model", Value: ref.Model}, {Key: "ref_id", Value: ref.RefID}}},
			}}}}}}},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "usage_count", Value: bson.D{{Key: "$size", Value: "$used_in"}}},
				{Key: "updated_at", Value: "$$NOW"},
			}}},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mediaService.ErrMediaNotFound
	}
	return nil
}

// RemoveUsage filters the reference out and recomputes the count
// atomically; removing an absent reference is a no-op.
func (r *MediaRepository) RemoveUsage(ctx context.Context, id string, ref model.UsageRef) error {
	log.Printf("unregistering usage %s:%s on media %q...", ref.Model, ref.RefID, id)

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{{Key: "used_in", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$used_in", bson.A{}}}}},
				{Key: "as", Value: "u"},
				{Key: "cond", Value: bson.D{{Key: "$not", Value: bson.A{bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$$u.model", ref.Model}}},
					bson.D{{Key: "$eq", Value: bson.A{"$$u.ref_id", ref.RefID}}},
				}}}}}}},
			}}}}}}},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "usage_count", Value: bson.D{{Key: "$size", Value: "$used_in"}}},
				{Key: "updated_at", Value: "$$NOW"},
			}}},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mediaService.ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepository) StorageStats(ctx context.Context) (*model.StorageStats, error) {
	log.Println("aggregating storage statistics...")

	catSum := func(category string) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$category", category}}}, 1, 0,
		}}}}}
	}
	catSizeSum := func(category string) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$category", category}}}, "$size_bytes", 0,
		}}}}}
	}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"deleted_at": nil}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_size_bytes", Value: bson.D{{Key: "$sum", Value: "$size_bytes"}}},
			{Key: "image_count", Value: catSum(model.CategoryImage)},
			{Key: "image_size_bytes", Value: catSizeSum(model.CategoryImage)},
			{Key: "document_count", Value: catSum(model.CategoryDocument)},
			{Key: "document_size_bytes", Value: catSizeSum(model.CategoryDocument)},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []model.StorageStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &model.StorageStats{}, nil
	}
	return &rows[0], nil
}

func (r *MediaRepository) FolderStats(ctx context.Context) ([]model.FolderStats, error) {
	log.Println("aggregating folder statistics...")

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"deleted_at": nil}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$folder"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "size_bytes", Value: bson.D{{Key: "$sum", Value: "$size_bytes"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}

	stats := []model.FolderStats{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *MediaRepository) FindOrphans(ctx context.Context) ([]*model.Media, error) {
	cur, err := r.col.Find(ctx, bson.M{"deleted_at": nil, "usage_count": 0})
	if err != nil {
		return nil, err
	}
	var medias []*model.Media
	if err := cur.All(ctx, &medias); err != nil {
		return nil, err
	}
	return medias, nil
}

func (r *MediaRepository) FindCountMismatches(ctx context.Context) ([]*model.Media, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"deleted_at": nil,
		"$expr": bson.M{"$ne": bson.A{
			"$usage_count",
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$used_in", bson.A{}}}},
		}},
	})
	if err != nil {
		return nil, err
	}
	var medias []*model.Media
	if err := cur.All(ctx, &medias); err != nil {
		return nil, err
	}
	return medias, nil
}

func buildListFilter(f port.ListFilter) bson.M {
	query := bson.M{}
	switch f.Deleted {
	case port.DeletedOnly:
		query["deleted_at"] = bson.M{"$ne": nil}
	case port.DeletedInclude:
		// no constraint
	default:
		query["deleted_at"] = nil
	}
	if f.Folder != "" {
		query["folder"] = f.Folder
	}
	if f.MimePrefix != "" {
		query["mime_type"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.MimePrefix)}
	}
	if f.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"original_name": re},
			bson.M{"alt_text": re},
			bson.M{"caption": re},
		}
	}
	return query
}

var sortableFields = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"file_name":     true,
	"original_name": true,
	"size_bytes":    true,
	"usage_count":   true,
}

func buildSort(opts port.ListOptions) bson.D {
	field := opts.SortBy
	if !sortableFields[field] {
		field = "created_at"
		opts.SortDesc = true
	}
	dir := 1
	if opts.SortDesc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}

func normalisePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
