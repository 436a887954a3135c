package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/asteroid-belt/dishdeck/internal/models"
)

// Firestore collection names.
const (
	DishesCollection  = "dishes"
	FiltersCollection = "filters"
)

type ingredientDoc struct {
	Text   string `firestore:"text,omitempty"`
	Name   string `firestore:"name,omitempty"`
	Amount string `firestore:"amount,omitempty"`
	Unit   string `firestore:"unit,omitempty"`
}

type dishDoc struct {
	ID          string          `firestore:"id"`
	Title       string          `firestore:"title"`
	Image       string          `firestore:"image"`
	Tags        []string        `firestore:"tags"`
	Ingredients []ingredientDoc `firestore:"ingredients"`
	Directions  []string        `firestore:"directions"`
	Notes       string          `firestore:"notes"`
	Rating      *float64        `firestore:"rating"`
	Likes       int             `firestore:"likes"`
	Privacy     string          `firestore:"privacy"`
	OriginalURL string          `firestore:"original_url"`
	CreatedAt   time.Time       `firestore:"created_at"`
}

type filterDoc struct {
	Category string `firestore:"category"`
	Label    string `firestore:"label"`
	Value    string `firestore:"value"`
	Position int    `firestore:"position"`
}

func toDoc(d *models.Dish) dishDoc {
	doc := dishDoc{
		ID:          d.ID,
		Title:       d.Title,
		Image:       d.Image,
		Tags:        d.Tags,
		Directions:  d.Directions,
		Notes:       d.Notes,
		Rating:      d.Rating,
		Likes:       d.Likes,
		Privacy:     string(d.Privacy),
		OriginalURL: d.OriginalURL,
		CreatedAt:   d.CreatedAt,
	}
	for _, ing := range d.Ingredients {
		if ing.Kind == models.IngredientRaw {
			doc.Ingredients = append(doc.Ingredients, ingredientDoc{Text: ing.Text})
		} else {
			doc.Ingredients = append(doc.Ingredients, ingredientDoc{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
		}
	}
	return doc
}

func fromDoc(doc dishDoc) models.Dish {
	d := models.Dish{
		ID:          doc.ID,
		Title:       doc.Title,
		Image:       doc.Image,
		Tags:        models.NormalizeTags(doc.Tags),
		Directions:  models.StepList(doc.Directions),
		Notes:       doc.Notes,
		Likes:       doc.Likes,
		Privacy:     models.Privacy(doc.Privacy),
		OriginalURL: doc.OriginalURL,
		CreatedAt:   doc.CreatedAt,
	}
	if doc.Rating != nil {
		d.Rating = models.ValidRating(*doc.Rating)
	}
	for _, ing := range doc.Ingredients {
		if ing.Name != "" {
			d.Ingredients = append(d.Ingredients, models.StructuredIngredient(ing.Name, ing.Amount, ing.Unit))
		} else if ing.Text != "" {
			d.Ingredients = append(d.Ingredients, models.RawIngredient(ing.Text))
		}
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d
}

// FirestoreRepository keeps dishes in a Cloud Firestore collection.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository connects to the Firestore project. Credentials
// come from GOOGLE_APPLICATION_CREDENTIALS or the environment.
func NewFirestoreRepository(ctx context.Context, projectID string) (*FirestoreRepository, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreRepository{client: client}, nil
}

// Close releases the Firestore client.
func (r *FirestoreRepository) Close() error {
	return r.client.Close()
}

func (r *FirestoreRepository) List(ctx context.Context, tags []string) ([]models.Dish, error) {
	q := r.client.Collection(DishesCollection).Query
	if len(tags) > 0 {
		// Firestore allows a single array-contains per query.
		q = q.Where("tags", "array-contains", tags[0])
	}

	var dishes []models.Dish
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list dishes: %w", err)
		}

		var doc dishDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode dish %s: %w", snap.Ref.ID, err)
		}
		d := fromDoc(doc)
		if hasAll(d, tags) {
			dishes = append(dishes, d)
		}
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		return dishes[i].CreatedAt.After(dishes[j].CreatedAt)
	})
	return dishes, nil
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (*models.Dish, error) {
	snap, err := r.find(ctx, id)
	if err != nil || snap == nil {
		return nil, err
	}
	var doc dishDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode dish %s: %w", id, err)
	}
	d := fromDoc(doc)
	return &d, nil
}

func (r *FirestoreRepository) Create(ctx context.Context, dish *models.Dish) error {
	_, err := r.client.Collection(DishesCollection).Doc(dish.ID).Set(ctx, toDoc(dish))
	if err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) Delete(ctx context.Context, id string) error {
	snap, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if _, err := snap.Ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete dish %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreRepository) Like(ctx context.Context, id string) (int, error) {
	snap, err := r.find(ctx, id)
	if err != nil {
		return 0, err
	}
	if snap == nil {
		return 0, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	var likes int
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cur, err := tx.Get(snap.Ref)
		if err != nil {
			return err
		}
		var doc dishDoc
		if err := cur.DataTo(&doc); err != nil {
			return err
		}
		likes = doc.Likes + 1
		return tx.Update(snap.Ref, []firestore.Update{{Path: "likes", Value: likes}})
	})
	if err != nil {
		return 0, fmt.Errorf("like dish %s: %w", id, err)
	}
	return likes, nil
}

func (r *FirestoreRepository) Filters(ctx context.Context) ([]models.FilterCategory, error) {
	var tags []models.FilterTag
	iter := r.client.Collection(FiltersCollection).OrderBy("position", firestore.Asc).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list filters: %w", err)
		}
		var doc filterDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode filter %s: %w", snap.Ref.ID, err)
		}
		tags = append(tags, models.FilterTag{Value: doc.Value, Label: doc.Label, Category: doc.Category, Position: doc.Position})
	}
	if len(tags) == 0 {
		return models.DefaultFilterCategories(), nil
	}
	return models.GroupFilterTags(tags), nil
}

// find looks a dish up by its id field. Returns nil, nil when missing.
func (r *FirestoreRepository) find(ctx context.Context, id string) (*firestore.DocumentSnapshot, error) {
	iter := r.client.Collection(DishesCollection).Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find dish %s: %w", id, err)
	}
	return snap, nil
}

func hasAll(d models.Dish, tags []string) bool {
	for _, t := range tags {
		if !d.HasTag(t) {
			return false
		}
	}
	return true
}
