package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/pkg/jwt"

	"bookshelf-backend/internal/domains/book"
	bookHandler "bookshelf-backend/internal/domains/book/handler"
	bookRepo "bookshelf-backend/internal/domains/book/repository"
	bookService "bookshelf-backend/internal/domains/book/service"

	"bookshelf-backend/internal/domains/profile"
	profileHandler "bookshelf-backend/internal/domains/profile/handler"
	profileRepo "bookshelf-backend/internal/domains/profile/repository"
	profileService "bookshelf-backend/internal/domains/profile/service"

	"bookshelf-backend/internal/domains/comment"
	commentHandler "bookshelf-backend/internal/domains/comment/handler"
	commentRepo "bookshelf-backend/internal/domains/comment/repository"
	commentService "bookshelf-backend/internal/domains/comment/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.MongoDB
	JWTManager *jwt.Manager

	BookRepo    book.Repository
	ProfileRepo profile.Repository
	CommentRepo comment.Repository

	BookService    book.Service
	ProfileService profile.Service
	CommentService comment.Service

	BookHandler    *bookHandler.BookHandler
	ProfileHandler *profileHandler.ProfileHandler
	CommentHandler *commentHandler.CommentHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer wires the whole graph in dependency order: config, then the
// mongo connection, then per-collection stores, repositories, services and
// finally the HTTP handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// STEP 2: database connection
	db := database.NewMongoDB(&database.DBConfig{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		MaxRetries:     cfg.Mongo.MaxRetries,
		ConnectTimeout: time.Duration(cfg.Mongo.ConnectTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	c.DB = db

	// STEP 3: one store per collection
	bookStore := database.NewStore(db.Collection(cfg.Mongo.BooksCollection))
	profileStore := database.NewStore(db.Collection(cfg.Mongo.ProfilesCollection))
	commentStore := database.NewStore(db.Collection(cfg.Mongo.CommentsCollection))

	// STEP 4: repositories
	c.BookRepo = bookRepo.NewMongoBookRepository(bookStore)
	c.ProfileRepo = profileRepo.NewMongoProfileRepository(profileStore)
	c.CommentRepo = commentRepo.NewMongoCommentRepository(commentStore)

	if err := c.ProfileRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure profile indexes: %w", err)
	}

	// STEP 5: services. The book service takes the comment service as its
	// cascade hook so deleting a book sweeps its comments.
	c.CommentService = commentService.NewCommentService(c.CommentRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.CommentService)
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo)

	// STEP 6: auth
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// STEP 7: handlers
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.CommentService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService, c.CommentService, c.JWTManager)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases held resources, currently just the mongo client.
func (c *Container) Cleanup() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.DB != nil {
		if err := c.DB.Close(ctx); err != nil {
			return fmt.Errorf("failed to close mongodb: %w", err)
		}
	}
	return nil
}
