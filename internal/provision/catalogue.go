// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"strings"

	"flopods-devstack/internal/config"
)

const (
	// tableKeyAttributeType is the DynamoDB attribute type for both key
	// attributes; every table uses string keys.
	tableKeyAttributeType = "S"
	// tablePartitionKey is the partition (HASH) key attribute name.
	tablePartitionKey = "pk"
	// tableSortKey is the sort (RANGE) key attribute name.
	tableSortKey = "sk"
	// tableBillingMode requests on-demand capacity; no throughput is
	// pre-provisioned for local development tables.
	tableBillingMode = "PAY_PER_REQUEST"

	// queueVisibilityTimeout is the primary queue's visibility timeout in
	// seconds.
	queueVisibilityTimeout = 300
	// queueRetentionPeriod is the message retention period in seconds for
	// both queues of the pair (14 days). The primary and its dead-letter
	// queue always share this value.
	queueRetentionPeriod = 1209600
)

type (
	// Bucket describes an S3 bucket to create.
	Bucket struct {
		Name   string
		Region string
	}

	// Table describes a DynamoDB table keyed by a composite of a string
	// partition key and a string sort key, billed on demand.
	Table struct {
		Name   string
		Region string
	}

	// EmailIdentity describes an SES sender identity to register for
	// verification.
	EmailIdentity struct {
		Address string
		Region  string
	}

	// Queue describes an SQS queue. The primary queue of the pair is FIFO
	// with content-based deduplication and a visibility timeout; the
	// dead-letter queue shares the retention period but carries no
	// deduplication or visibility settings.
	Queue struct {
		Name                      string
		Region                    string
		Fifo                      bool
		ContentBasedDeduplication bool
		VisibilityTimeout         int
		RetentionPeriod           int
	}

	// Catalogue is the fixed set of resources the provisioner converges the
	// emulator towards. It is derived entirely from the resolved
	// configuration; provisioning the same catalogue twice is a no-op.
	Catalogue struct {
		Buckets    []Bucket
		Tables     []Table
		Identities []EmailIdentity
		Queues     []Queue
	}
)

// BuildCatalogue derives the resource catalogue from the resolved
// configuration. Names come from config (with their defaults); key schema,
// billing mode, and queue attributes are fixed.
func BuildCatalogue(cfg *config.Config) Catalogue {
	return Catalogue{
		Buckets: []Bucket{
			{Name: cfg.DocumentsBucket, Region: cfg.Region},
			{Name: cfg.VectorsBucket, Region: cfg.Region},
			{Name: cfg.FilesBucket, Region: cfg.Region},
		},
		Tables: []Table{
			{Name: cfg.PodsTable, Region: cfg.Region},
			{Name: cfg.ExecutionsTable, Region: cfg.Region},
			{Name: cfg.ContextTable, Region: cfg.Region},
			{Name: cfg.SessionsTable, Region: cfg.Region},
			{Name: cfg.CacheTable, Region: cfg.Region},
		},
		Identities: []EmailIdentity{
			{Address: cfg.NoReplyEmail, Region: cfg.Region},
			{Address: cfg.SupportEmail, Region: cfg.Region},
		},
		Queues: []Queue{
			{
				Name:                      cfg.ProcessingQueue,
				Region:                    cfg.Region,
				Fifo:                      true,
				ContentBasedDeduplication: true,
				VisibilityTimeout:         queueVisibilityTimeout,
				RetentionPeriod:           queueRetentionPeriod,
			},
			{
				Name:            cfg.ProcessingDLQ,
				Region:          cfg.Region,
				Fifo:            true,
				RetentionPeriod: queueRetentionPeriod,
			},
		},
	}
}

// CreateArgs returns the awslocal argv that creates the bucket.
func (b Bucket) CreateArgs() []string {
	return []string{"awslocal", "s3", "mb", "s3://" + b.Name, "--region", b.Region}
}

// CreateArgs returns the awslocal argv that creates the table.
func (t Table) CreateArgs() []string {
	return []string{
		"awslocal", "dynamodb", "create-table",
		"--table-name", t.Name,
		"--attribute-definitions",
		fmt.Sprintf("AttributeName=%s,AttributeType=%s", tablePartitionKey, tableKeyAttributeType),
		fmt.Sprintf("AttributeName=%s,AttributeType=%s", tableSortKey, tableKeyAttributeType),
		"--key-schema",
		fmt.Sprintf("AttributeName=%s,KeyType=HASH", tablePartitionKey),
		fmt.Sprintf("AttributeName=%s,KeyType=RANGE", tableSortKey),
		"--billing-mode", tableBillingMode,
		"--region", t.Region,
	}
}

// CreateArgs returns the awslocal argv that registers the identity.
func (i EmailIdentity) CreateArgs() []string {
	return []string{
		"awslocal", "ses", "verify-email-identity",
		"--email-address", i.Address,
		"--region", i.Region,
	}
}

// CreateArgs returns the awslocal argv that creates the queue.
func (q Queue) CreateArgs() []string {
	return []string{
		"awslocal", "sqs", "create-queue",
		"--queue-name", q.Name,
		"--attributes", q.attributeString(),
		"--region", q.Region,
	}
}

// attributeString renders the queue attributes in the comma-separated
// Key=Value form awslocal accepts. Only set attributes are emitted, in a
// fixed order.
func (q Queue) attributeString() string {
	var attrs []string
	if q.Fifo {
		attrs = append(attrs, "FifoQueue=true")
	}
	if q.ContentBasedDeduplication {
		attrs = append(attrs, "ContentBasedDeduplication=true")
	}
	if q.VisibilityTimeout > 0 {
		attrs = append(attrs, fmt.Sprintf("VisibilityTimeout=%d", q.VisibilityTimeout))
	}
	if q.RetentionPeriod > 0 {
		attrs = append(attrs, fmt.Sprintf("MessageRetentionPeriod=%d", q.RetentionPeriod))
	}
	return strings.Join(attrs, ",")
}
