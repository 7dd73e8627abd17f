package app

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/credentials"
	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/logging"
)

// Connect opens the identity store and the configured document store and
// verifies the identity store is reachable. Any failure here is fatal.
func Connect(ctx context.Context, cfg *Config) (usersweep.Client, error) {
	logger := logging.FromContext(ctx)

	file, path, err := credentials.Load(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	project, source := credentials.ResolveProject(file, cfg.ProjectID)
	logger.Debug().
		Str("credentials", path).
		Str("project", credentials.Mask(project)).
		Str("project_source", source).
		Msg("Loaded credentials")

	fb, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: project}, option.WithCredentialsFile(path))
	if err != nil {
		return nil, errors.NewConfigError("firebase", "cannot initialize app", err)
	}

	authClient, err := fb.Auth(ctx)
	if err != nil {
		return nil, errors.WrapUnavailable(constants.IdentityStore, "connect", err)
	}
	ids := identity.NewFirebaseStore(authClient, identity.WithPageSize(cfg.PageSize))

	pingCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()
	if err := ids.Ping(pingCtx); err != nil {
		return nil, err
	}
	logger.Debug().Msg("Identity store reachable")

	docs, err := openDocuments(ctx, fb, cfg)
	if err != nil {
		return nil, err
	}

	client, err := usersweep.New(ids, docs,
		usersweep.WithCollection(cfg.PrimaryCollection),
		usersweep.WithCascade(cfg.CascadeCollections...),
		usersweep.WithTimeout(cfg.OperationTimeout),
	)
	if err != nil {
		_ = docs.Close()
		return nil, err
	}
	return client, nil
}

// openDocuments opens the document store selected by cfg.DocumentStore.
func openDocuments(ctx context.Context, fb *firebase.App, cfg *Config) (documents.Store, error) {
	logger := logging.FromContext(ctx)

	switch cfg.DocumentStore {
	case constants.BackendMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
		defer cancel()
		store, err := documents.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
		return store, nil

	default:
		fs, err := fb.Firestore(ctx)
		if err != nil {
			return nil, errors.WrapUnavailable(constants.DocumentStore, "connect", err)
		}
		logger.Debug().Msg("Connected to Firestore")
		return documents.NewFirestoreStore(fs), nil
	}
}
