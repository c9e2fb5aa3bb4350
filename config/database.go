package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client                 *mongo.Client
	MedicineCollection     *mongo.Collection
	SupplierCollection     *mongo.Collection
	PrescriptionCollection *mongo.Collection
	SaleCollection         *mongo.Collection
	UserCollection         *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "pharmacy"
	}

	Client = client
	MedicineCollection = client.Database(dbName).Collection("medicines")
	SupplierCollection = client.Database(dbName).Collection("suppliers")
	PrescriptionCollection = client.Database(dbName).Collection("prescriptions")
	SaleCollection = client.Database(dbName).Collection("sales")
	UserCollection = client.Database(dbName).Collection("users")

	ensureIndexes(ctx)
	log.Println("Connected to MongoDB")
}

// ensureIndexes creates the unique indexes the validators rely on:
// username, user email, supplier email and prescription number.
func ensureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		log.Fatalf("failed to create user indexes: %v", err)
	}

	_, err = SupplierCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	})
	if err != nil {
		log.Fatalf("failed to create supplier index: %v", err)
	}

	_, err = PrescriptionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "prescriptionNumber", Value: 1}}, Options: unique,
	})
	if err != nil {
		log.Fatalf("failed to create prescription index: %v", err)
	}
}
