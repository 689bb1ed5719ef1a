// Package refmgr wires configuration, logging, the version catalog and a
// storage service into a single manager the CLI (or an importing program)
// drives. See doc_test.go for library usage.
package refmgr

import (
	"path/filepath"

	"github.com/daylilybio/refbucket/pkg/awsstore"
	"github.com/daylilybio/refbucket/pkg/memstore"
	"github.com/daylilybio/refbucket/pkg/refdata"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type RefManager struct {
	Catalog *refdata.Catalog
	Store   refdata.ObjectStore
	Logger  *logrus.Logger
	Cfg     *viper.Viper
}

// NewManager builds a manager from user options. Recognized options:
// "config-file" (string), "logger" (*logrus.Logger), "profile" (string),
// "region" (string). Unset options fall back to the config file and its
// defaults.
func NewManager(userCfg map[string]interface{}) (*RefManager, error) {
	mgr := &RefManager{Catalog: refdata.DefaultCatalog()}

	var cfgPath *string
	if raw, ok := userCfg["config-file"]; ok {
		path, ok := raw.(string)
		if !ok {
			return nil, errors.New("option 'config-file' must be of type string")
		}
		cfgPath = &path
	}
	if err := mgr.initConfig(cfgPath); err != nil {
		return nil, err
	}

	if raw, ok := userCfg["logger"]; ok {
		logger, ok := raw.(*logrus.Logger)
		if !ok {
			return nil, errors.New("option 'logger' must be a *logrus.Logger")
		}
		mgr.Logger = logger
	} else {
		mgr.Logger = logrus.New()
	}

	if raw, ok := userCfg["profile"]; ok {
		mgr.Cfg.Set("service.storage.awsS3.profile", raw)
	}
	if raw, ok := userCfg["region"]; ok {
		mgr.Cfg.Set("service.storage.awsS3.region", raw)
	}

	if err := mgr.InitStorageService(); err != nil {
		return nil, err
	}

	return mgr, nil
}

func (mgr *RefManager) initConfig(cfgPath *string) error {
	// This is a private viper context just for refbucket (so as not to
	// conflict with the importer's usage).
	mgr.Cfg = viper.New()

	mgr.Cfg.SetDefault("storage-service", "awsS3")

	// Order of precedence: flag, ENV, refbucket.yaml, "us-west-2"
	mgr.Cfg.SetDefault("service.storage.awsS3.region", "us-west-2")
	mgr.Cfg.BindEnv("service.storage.awsS3.region", "AWS_DEFAULT_REGION")

	if cfgPath != nil {
		// Use config file from the flag.
		mgr.Cfg.SetConfigFile(*cfgPath)
		if err := mgr.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load config")
		}
		return nil
	}

	// Default search path is ./configs/refbucket.* and
	// ~/.refbucket/refbucket.* (* can be json, yaml, etc). Running without
	// any config file is fine; every key has a default.
	mgr.Cfg.AddConfigPath("./configs")
	if home, err := homedir.Dir(); err == nil {
		mgr.Cfg.AddConfigPath(filepath.Join(home, ".refbucket"))
	}
	mgr.Cfg.SetConfigName("refbucket")

	if err := mgr.Cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "Failed to load config")
		}
	}
	return nil
}

// storageConfig assembles the awsS3 service subtree key by key. Viper's Sub
// does not merge layers: once a command Sets any override key under the
// section, Sub would return the override subtree alone and drop the config
// file's profile and region. Reading full-path keys goes through every layer.
func (mgr *RefManager) storageConfig() *viper.Viper {
	cfg := viper.New()
	cfg.Set("profile", mgr.Cfg.GetString("service.storage.awsS3.profile"))
	cfg.Set("region", mgr.Cfg.GetString("service.storage.awsS3.region"))
	cfg.Set("use-acceleration", mgr.Cfg.GetBool("service.storage.awsS3.use-acceleration"))
	cfg.Set("log-file", mgr.Cfg.GetString("service.storage.awsS3.log-file"))
	return cfg
}

// InitStorageService (re)builds the storage service from the current
// configuration. Commands that override copy options (acceleration, copy
// log) set the keys on Cfg and call this again before acting.
func (mgr *RefManager) InitStorageService() error {
	serviceName := mgr.Cfg.GetString("storage-service")

	switch serviceName {
	case "awsS3":
		store, err := awsstore.NewStore(
			mgr.Logger.WithField("module", "storage.awsS3"),
			mgr.storageConfig())
		if err != nil {
			return errors.Wrap(err, "Failed to initialize service "+serviceName)
		}
		mgr.Store = store
	case "memory":
		mgr.Store = memstore.New()
	default:
		return errors.New("Unrecognized storage service: " + serviceName)
	}
	return nil
}

// Region returns the region a command should target, preferring the explicit
// override and falling back to the configured default.
func (mgr *RefManager) Region(override string) string {
	if override != "" {
		return override
	}
	return mgr.Cfg.GetString("service.storage.awsS3.region")
}

// Version resolves a version id against the catalog, with the empty string
// meaning the shipped default release.
func (mgr *RefManager) Version(id string) (refdata.ReferenceVersion, error) {
	if id == "" {
		return mgr.Catalog.Default(), nil
	}
	return mgr.Catalog.Lookup(id)
}

func (mgr *RefManager) inspector() *refdata.Inspector {
	return refdata.NewInspector(mgr.Store, mgr.Logger.WithField("module", "inspector"))
}

func (mgr *RefManager) driver() *refdata.Driver {
	return refdata.NewDriver(mgr.Store, mgr.Logger.WithField("module", "driver"))
}
