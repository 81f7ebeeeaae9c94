package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/problem"
)

const quizCollection = "quizzes"

// QuizRepository implements ports.QuizRepository using MongoDB.
type QuizRepository struct {
	coll *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{coll: db.Collection(quizCollection)}
}

func (r *QuizRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quiz); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuizNotFound
		}
		return nil, problem.FromStorage(err)
	}
	return &quiz, nil
}

func (r *QuizRepository) Insert(ctx context.Context, quiz *domain.Quiz) error {
	if _, err := r.coll.InsertOne(ctx, quiz); err != nil {
		return problem.FromStorage(err)
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return problem.FromStorage(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}
