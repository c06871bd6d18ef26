package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	NoImportFilesError
	WriteReportError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBMissingTablesError
	DBNotConnectedError
	DBRowCountError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError
	SchemaStatusError

	// Store errors
	StoreQueryError
	StoreInsertError
	StoreUpdateError
	StoreDecodeError

	// Remote source errors
	SourceRequestError
	SourceStatusError
	SourceDecodeError
	SourceRateLimitError

	// Sync errors
	SyncCountryError
	SyncProbeError
	SyncPageError
	SyncRecomputeError
	SyncClusterError
	SyncAllFailedError

	// Enrichment errors
	EnrichSpeciesNotFoundError
	EnrichStepError

	// Import errors
	ImportReadError
	ImportDecodeError

	// Server errors
	ServerStartError
)
