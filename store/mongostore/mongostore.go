// Package mongostore keeps the whole state document as a single
// fixed-id document in a MongoDB collection. The engine never queries
// inside the document; it is loaded and replaced in full.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"posada/apperr"
	"posada/store"
)

const stateDocID = "state"

type document struct {
	ID string `bson:"_id"`
	store.State `bson:",inline"`
}

type Store struct {
	coll *mongo.Collection
}

// Connect dials MongoDB and returns the store plus the client for
// shutdown. The state lives in the "state" collection of the given db.
func Connect(ctx context.Context, uri, db string) (*Store, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.StoreUnavailable, err, "No se pudo conectar a la base de datos.")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, apperr.Wrap(apperr.StoreUnavailable, err, "No se pudo conectar a la base de datos.")
	}
	return &Store{coll: client.Database(db).Collection("state")}, client, nil
}

func (s *Store) Load(ctx context.Context) (store.State, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return store.State{}, nil
	}
	if err != nil {
		return store.State{}, apperr.Wrap(apperr.StoreUnavailable, err, "No se pudo leer la base de datos.")
	}
	return doc.State, nil
}

func (s *Store) Save(ctx context.Context, state store.State) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": stateDocID},
		document{ID: stateDocID, State: state},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return apperr.Wrap(apperr.StoreUnavailable, err, "No se pudo escribir en la base de datos.")
	}
	return nil
}
