package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apitemplate/go-user-api/config"
	"github.com/apitemplate/go-user-api/internal/ratelimit"
	"github.com/apitemplate/go-user-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg     *config.Config
	logger  *logrus.Logger
	mongoDB *mongo.Database

	jwtManager *helpers.JWTManager
	limitStore ratelimit.Store

	gcsClient *storage.Client
	esClient  *elasticsearch.Client
	rabbitPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetMongo(db *mongo.Database)             { mongoDB = db }
func GetMongo() *mongo.Database               { return mongoDB }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func GetJWT() *helpers.JWTManager             { return jwtManager }
func SetLimitStore(s ratelimit.Store)         { limitStore = s }
func GetLimitStore() ratelimit.Store          { return limitStore }
func SetGCS(c *storage.Client)                { gcsClient = c }
func GetGCS() *storage.Client                 { return gcsClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
