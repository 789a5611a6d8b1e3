package data

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/observability/metrics"
	"github.com/jobpilot/jobreview/internal/observability/statsd"
)

// Store attribute names.
const (
	attrJobTitle       = "JobTitle"
	attrJobDescription = "JobDescription"
	attrLink           = "Link"
	attrCompany        = "Company"
	attrIsQualified    = "IsQualified"
	attrProcessed      = "Processed"
	attrDateProcessed  = "DateProcessed"
)

// jobAdItem is the stored shape of a job ad.
type jobAdItem struct {
	JobID          string `dynamodbav:"JobID"`
	DateAdded      int64  `dynamodbav:"DateAdded"`
	JobTitle       string `dynamodbav:"JobTitle"`
	JobDescription string `dynamodbav:"JobDescription"`
	Link           string `dynamodbav:"Link"`
	Company        string `dynamodbav:"Company"`
	IsQualified    bool   `dynamodbav:"IsQualified"`
	Processed      string `dynamodbav:"Processed"`
	DateProcessed  int64  `dynamodbav:"DateProcessed,omitempty"`
}

type jobAdKey struct {
	JobID     string `dynamodbav:"JobID"`
	DateAdded int64  `dynamodbav:"DateAdded"`
}

func (it jobAdItem) toModel() model.JobAd {
	return model.JobAd{
		ID:            it.JobID,
		DateAdded:     it.DateAdded,
		Title:         it.JobTitle,
		Company:       it.Company,
		Description:   it.JobDescription,
		Link:          it.Link,
		IsQualified:   it.IsQualified,
		Processed:     model.ParseProcessed(it.Processed),
		DateProcessed: it.DateProcessed,
	}
}

// JobAdRepoOptions configures a JobAdRepo.
type JobAdRepoOptions struct {
	Client DynamoAPI
	// TableName is the job ad table keyed by (JobID, DateAdded).
	TableName string
	// IndexName is the secondary index partitioned on the Processed sentinel.
	IndexName string
	Metrics   statsd.Sink
	Logger    *slog.Logger
}

// JobAdRepo reads and updates job ads in DynamoDB. It holds no state between calls.
type JobAdRepo struct {
	client  DynamoAPI
	table   string
	index   string
	metrics statsd.Sink
	logger  *slog.Logger
}

var _ core.JobAdRepository = (*JobAdRepo)(nil)

// NewJobAdRepo validates opts and returns a repository.
func NewJobAdRepo(opts JobAdRepoOptions) (*JobAdRepo, error) {
	switch {
	case opts.Client == nil:
		return nil, ErrClientRequired
	case opts.TableName == "":
		return nil, ErrTableNameRequired
	case opts.IndexName == "":
		return nil, ErrIndexNameRequired
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobAdRepo{
		client:  opts.Client,
		table:   opts.TableName,
		index:   opts.IndexName,
		metrics: opts.Metrics,
		logger:  logger.With("component", "jobad_repo"),
	}, nil
}

// FetchPage queries the unprocessed index for at most req.Size job ads, resuming after
// req.Cursor. The returned Next token is the store's own continuation, empty at the end.
func (r *JobAdRepo) FetchPage(ctx context.Context, req model.PageRequest) (*model.JobAdPage, error) {
	if req.Size <= 0 {
		return nil, apperrors.ValidationField("size", "page size must be positive")
	}
	start, err := DecodeContinuation(req.Cursor)
	if err != nil {
		return nil, err
	}
	expr, err := unprocessedCondition()
	if err != nil {
		return nil, err
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(clampInt32(req.Size)),
		ExclusiveStartKey:         start,
	}

	began := time.Now()
	out, err := r.client.Query(ctx, in)
	r.observe("query", began, err)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed job ads: %w", apperrors.MapStoreError(err))
	}

	var items []jobAdItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "unmarshal job ads")
	}
	if len(items) > req.Size {
		items = items[:req.Size]
	}

	next, err := EncodeContinuation(out.LastEvaluatedKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode continuation")
	}

	page := &model.JobAdPage{Items: make([]model.JobAd, 0, len(items)), Next: next}
	for _, it := range items {
		page.Items = append(page.Items, it.toModel())
	}
	return page, nil
}

// Count returns the number of unprocessed job ads, following continuation keys until the
// index is exhausted.
func (r *JobAdRepo) Count(ctx context.Context) (int, error) {
	expr, err := unprocessedCondition()
	if err != nil {
		return 0, err
	}
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	})

	began := time.Now()
	total := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			r.observe("count", began, err)
			return 0, fmt.Errorf("count unprocessed job ads: %w", apperrors.MapStoreError(err))
		}
		total += int(out.Count)
	}
	r.observe("count", began, nil)
	return total, nil
}

// Get loads one job ad by primary key.
func (r *JobAdRepo) Get(ctx context.Context, id string, dateAdded int64) (*model.JobAd, error) {
	key, err := marshalKey(id, dateAdded)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       key,
	})
	r.observe("get", began, err)
	if err != nil {
		return nil, fmt.Errorf("get job ad %s: %w", id, apperrors.MapStoreError(err))
	}
	if len(out.Item) == 0 {
		return nil, apperrors.NotFoundf("job ad %s not found", id)
	}

	var item jobAdItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "unmarshal job ad")
	}
	job := item.toModel()
	return &job, nil
}

// Update writes every mutable field of job and flips its Processed sentinel. The write is
// unconditional so concurrent decisions resolve last-write-wins.
func (r *JobAdRepo) Update(ctx context.Context, job model.JobAd) error {
	key, err := marshalKey(job.ID, job.DateAdded)
	if err != nil {
		return err
	}

	update := expression.
		Set(expression.Name(attrJobTitle), expression.Value(job.Title)).
		Set(expression.Name(attrJobDescription), expression.Value(job.Description)).
		Set(expression.Name(attrLink), expression.Value(job.Link)).
		Set(expression.Name(attrCompany), expression.Value(job.Company)).
		Set(expression.Name(attrIsQualified), expression.Value(job.IsQualified)).
		Set(expression.Name(attrDateProcessed), expression.Value(job.DateProcessed)).
		Set(expression.Name(attrProcessed), expression.Value(model.ProcessedSentinel(true)))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build update expression")
	}

	began := time.Now()
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	r.observe("update", began, err)
	if err != nil {
		return fmt.Errorf("update job ad %s: %w", job.ID, apperrors.MapStoreError(err))
	}
	return nil
}

func (r *JobAdRepo) observe(op string, began time.Time, err error) {
	metrics.EmitStoreCall(r.metrics, metrics.StoreCall{Operation: op, Duration: time.Since(began), Err: err})
	if err != nil {
		r.logger.Debug("store call failed", "operation", op, "error", err)
	}
}

func unprocessedCondition() (expression.Expression, error) {
	cond := expression.Key(attrProcessed).Equal(expression.Value(model.ProcessedSentinel(false)))
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return expression.Expression{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build key condition")
	}
	return expr, nil
}

func marshalKey(id string, dateAdded int64) (map[string]types.AttributeValue, error) {
	if id == "" {
		return nil, apperrors.ValidationField("id", "job id is required")
	}
	key, err := attributevalue.MarshalMap(jobAdKey{JobID: id, DateAdded: dateAdded})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "marshal job ad key")
	}
	return key, nil
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n) //nolint:gosec // bounded above
}
