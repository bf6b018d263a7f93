package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials in a MongoDB URI before logging
func maskMongoURI(uri string) string {
	if !strings.Contains(uri, "@") {
		return uri
	}
	return "mongodb://****:****@" + uri[strings.LastIndex(uri, "@")+1:]
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	logger := zap.L().Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The unique index on numero_sinistro is what ultimately protects the
	// claim-number sequence against concurrent writers.
	if err := ensureIndex(ctx, logger, AppConfig.SinistroCollection, "numero_sinistro_1",
		bson.D{{Key: "numero_sinistro", Value: 1}}, true); err != nil {
		return err
	}

	if err := ensureIndex(ctx, logger, AppConfig.SinistroCollection, "completion_token_1",
		bson.D{{Key: "completion_token", Value: 1}}, false); err != nil {
		return err
	}

	if err := ensureIndex(ctx, logger, AppConfig.StatusCollection, "nome_1",
		bson.D{{Key: "nome", Value: 1}}, true); err != nil {
		return err
	}

	if err := ensureIndex(ctx, logger, AppConfig.UserCollection, "email_1",
		bson.D{{Key: "email", Value: 1}}, true); err != nil {
		return err
	}

	if err := ensureIndex(ctx, logger, AppConfig.AuditCollection, "timestamp_1",
		bson.D{{Key: "timestamp", Value: 1}}, false); err != nil {
		return err
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureIndex creates a single index when it is not already present
func ensureIndex(ctx context.Context, logger *zap.Logger, collectionName, indexName string, keys bson.D, unique bool) error {
	collection := MongoDB.Collection(collectionName)

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok && name == indexName {
			logger.Debug("index already exists",
				zap.String("collection", collectionName),
				zap.String("index", indexName))
			return nil
		}
	}

	indexModel := mongo.IndexModel{
		Keys: keys,
		Options: options.Index().
			SetName(indexName).
			SetUnique(unique),
	}

	_, err = collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Another instance may have created it between the list and the create
		if mongo.IsDuplicateKeyError(err) {
			logger.Info("index already exists (created by another instance)",
				zap.String("collection", collectionName),
				zap.String("index", indexName))
			return nil
		}
		logger.Error("failed to create index",
			zap.String("collection", collectionName),
			zap.String("index", indexName),
			zap.Error(err))
		return err
	}

	logger.Info("index created",
		zap.String("collection", collectionName),
		zap.String("index", indexName))
	return nil
}
