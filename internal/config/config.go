// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// EnvFileName is the name of the optional key/value configuration file.
const EnvFileName = ".env"

// Configuration keys recognized in the env file and process environment.
// Every key has a hard-coded fallback; missing keys never cause failure.
const (
	keyContainerRuntime = "CONTAINER_RUNTIME"

	keyDBContainer         = "DB_CONTAINER_NAME"
	keyLocalstackContainer = "LOCALSTACK_CONTAINER_NAME"
	keyRedisContainer      = "REDIS_CONTAINER_NAME"

	keyDBVolume         = "DB_VOLUME_NAME"
	keyLocalstackVolume = "LOCALSTACK_VOLUME_NAME"
	keyRedisVolume      = "REDIS_VOLUME_NAME"

	keyNetwork = "NETWORK_NAME"

	keyRegion      = "AWS_DYNAMODB_REGION"
	keyEndpointURL = "AWS_ENDPOINT_URL"

	keyDocumentsBucket = "S3_DOCUMENTS_BUCKET"
	keyVectorsBucket   = "S3_VECTORS_BUCKET"
	keyFilesBucket     = "S3_FILES_BUCKET"

	keyPodsTable       = "DYNAMODB_PODS_TABLE"
	keyExecutionsTable = "DYNAMODB_EXECUTIONS_TABLE"
	keyContextTable    = "DYNAMODB_CONTEXT_TABLE"
	keySessionsTable   = "DYNAMODB_SESSIONS_TABLE"
	keyCacheTable      = "DYNAMODB_CACHE_TABLE"

	keyNoReplyEmail = "SES_NOREPLY_EMAIL"
	keySupportEmail = "SES_SUPPORT_EMAIL"

	keyProcessingQueue = "SQS_PROCESSING_QUEUE"
	keyProcessingDLQ   = "SQS_PROCESSING_DLQ"

	keyComposeDir    = "COMPOSE_DIR"
	keySettleSeconds = "RESET_SETTLE_SECONDS"
)

// LoadOptions controls how Load resolves the configuration bundle.
type LoadOptions struct {
	// EnvFilePath is an explicit env file path (from --env-file). When set it
	// is used exclusively; the candidate-directory search is skipped.
	EnvFilePath string
	// ProjectDir is the directory the candidate search starts from. Empty
	// means the current working directory.
	ProjectDir string
}

// Load produces the fully-resolved configuration bundle consumed by the reset
// sequencer and the provisioner. Resolution is layered: hard-coded defaults,
// then the env file (project root first, then its parent), then the process
// environment. The returned warnings are corrective notices (e.g., an
// unrecognized runtime selector coerced to the default) for the CLI layer to
// surface; they never accompany a non-nil error.
func Load(opts LoadOptions) (*Config, []string, error) {
	projectDir := opts.ProjectDir
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve working directory: %w", err)
		}
		projectDir = wd
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	envFile := ""
	if opts.EnvFilePath != "" {
		if !fileExists(opts.EnvFilePath) {
			return nil, nil, fmt.Errorf("env file not found: %s", opts.EnvFilePath)
		}
		envFile = opts.EnvFilePath
	} else {
		// Check the project root, then its parent. Neither existing is fine;
		// process environment and defaults still apply.
		for _, dir := range []string{projectDir, filepath.Dir(projectDir)} {
			candidate := filepath.Join(dir, EnvFileName)
			if fileExists(candidate) {
				envFile = candidate
				break
			}
		}
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	var warnings []string

	engine, coerced := NormalizeContainerEngine(v.GetString(keyContainerRuntime))
	if coerced {
		warnings = append(warnings, fmt.Sprintf(
			"unsupported %s value %q, falling back to %q",
			keyContainerRuntime, v.GetString(keyContainerRuntime), DefaultContainerEngine))
	}

	// Compose files live next to the env file when one was found, otherwise
	// under the project root.
	composeDir := v.GetString(keyComposeDir)
	if composeDir == "" {
		base := projectDir
		if envFile != "" {
			base = filepath.Dir(envFile)
		}
		composeDir = filepath.Join(base, "docker")
	}
	if !filepath.IsAbs(composeDir) {
		composeDir = filepath.Join(projectDir, composeDir)
	}

	cfg := &Config{
		ContainerEngine: engine,
		EnvFile:         envFile,

		DBContainer:         v.GetString(keyDBContainer),
		LocalstackContainer: v.GetString(keyLocalstackContainer),
		RedisContainer:      v.GetString(keyRedisContainer),

		DBVolume:         v.GetString(keyDBVolume),
		LocalstackVolume: v.GetString(keyLocalstackVolume),
		RedisVolume:      v.GetString(keyRedisVolume),

		Network: v.GetString(keyNetwork),

		Region:      v.GetString(keyRegion),
		EndpointURL: v.GetString(keyEndpointURL),

		DocumentsBucket: v.GetString(keyDocumentsBucket),
		VectorsBucket:   v.GetString(keyVectorsBucket),
		FilesBucket:     v.GetString(keyFilesBucket),

		PodsTable:       v.GetString(keyPodsTable),
		ExecutionsTable: v.GetString(keyExecutionsTable),
		ContextTable:    v.GetString(keyContextTable),
		SessionsTable:   v.GetString(keySessionsTable),
		CacheTable:      v.GetString(keyCacheTable),

		NoReplyEmail: v.GetString(keyNoReplyEmail),
		SupportEmail: v.GetString(keySupportEmail),

		ProcessingQueue: v.GetString(keyProcessingQueue),
		ProcessingDLQ:   v.GetString(keyProcessingDLQ),

		ComposeDir:  composeDir,
		SettleDelay: time.Duration(v.GetInt(keySettleSeconds)) * time.Second,
	}

	return cfg, warnings, nil
}

// setDefaults registers the hard-coded fallback for every recognized key.
// The compose directory has no registered default; its fallback depends on
// where the env file was found and is resolved in Load.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyContainerRuntime, string(DefaultContainerEngine))

	v.SetDefault(keyDBContainer, "flopods-db")
	v.SetDefault(keyLocalstackContainer, "localstack")
	v.SetDefault(keyRedisContainer, "flopods-redis")

	v.SetDefault(keyDBVolume, "flopods_db_data")
	v.SetDefault(keyLocalstackVolume, "localstack-data")
	v.SetDefault(keyRedisVolume, "redis-data")

	v.SetDefault(keyNetwork, "flopods_network")

	v.SetDefault(keyRegion, "ap-south-1")
	v.SetDefault(keyEndpointURL, "http://localhost:4566")

	v.SetDefault(keyDocumentsBucket, "flopods-documents-dev")
	v.SetDefault(keyVectorsBucket, "flopods-vectors-dev")
	v.SetDefault(keyFilesBucket, "flopods-files-dev")

	v.SetDefault(keyPodsTable, "flopods-pods-dev")
	v.SetDefault(keyExecutionsTable, "flopods-executions-dev")
	v.SetDefault(keyContextTable, "flopods-context-dev")
	v.SetDefault(keySessionsTable, "flopods-sessions-dev")
	v.SetDefault(keyCacheTable, "flopods-cache-dev")

	v.SetDefault(keyNoReplyEmail, "noreply@flopods.local")
	v.SetDefault(keySupportEmail, "support@flopods.local")

	v.SetDefault(keyProcessingQueue, "flopods-document-processing.fifo")
	v.SetDefault(keyProcessingDLQ, "flopods-document-processing-dlq.fifo")

	v.SetDefault(keySettleSeconds, 10)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
