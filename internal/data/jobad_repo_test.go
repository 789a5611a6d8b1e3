package data

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobpilot/jobreview/internal/domain/model"
	apperrors "github.com/jobpilot/jobreview/internal/errors"
	"github.com/jobpilot/jobreview/internal/mocks"
)

const (
	testTable = "JobAds"
	testIndex = "UnprocessedJobs"
)

func newTestRepo(t *testing.T, client DynamoAPI) *JobAdRepo {
	t.Helper()
	repo, err := NewJobAdRepo(JobAdRepoOptions{Client: client, TableName: testTable, IndexName: testIndex})
	require.NoError(t, err)
	return repo
}

func storedItem(t *testing.T, it jobAdItem) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(it)
	require.NoError(t, err)
	return av
}

func TestNewJobAdRepo_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)

	_, err := NewJobAdRepo(JobAdRepoOptions{TableName: testTable, IndexName: testIndex})
	assert.ErrorIs(t, err, ErrClientRequired)
	_, err = NewJobAdRepo(JobAdRepoOptions{Client: client, IndexName: testIndex})
	assert.ErrorIs(t, err, ErrTableNameRequired)
	_, err = NewJobAdRepo(JobAdRepoOptions{Client: client, TableName: testTable})
	assert.ErrorIs(t, err, ErrIndexNameRequired)
}

func TestJobAdRepo_FetchPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)

	lastKey := map[string]types.AttributeValue{
		"JobID":     &types.AttributeValueMemberS{Value: "b"},
		"DateAdded": &types.AttributeValueMemberN{Value: "200"},
		"Processed": &types.AttributeValueMemberS{Value: "No"},
	}

	client.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, testTable, aws.ToString(in.TableName))
			assert.Equal(t, testIndex, aws.ToString(in.IndexName))
			assert.Equal(t, int32(2), aws.ToInt32(in.Limit))
			assert.Nil(t, in.ExclusiveStartKey)
			assert.Contains(t, in.ExpressionAttributeNames, "#0")
			assert.Equal(t, "Processed", in.ExpressionAttributeNames["#0"])
			assert.Equal(t, &types.AttributeValueMemberS{Value: "No"}, in.ExpressionAttributeValues[":0"])
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					storedItem(t, jobAdItem{JobID: "a", DateAdded: 100, JobTitle: "Go Dev", Company: "Acme", Link: "https://acme.test/a", Processed: "No"}),
					storedItem(t, jobAdItem{JobID: "b", DateAdded: 200, JobTitle: "SRE", Processed: "No"}),
				},
				LastEvaluatedKey: lastKey,
			}, nil
		})

	page, err := repo.FetchPage(context.Background(), model.PageRequest{Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, model.JobAd{ID: "a", DateAdded: 100, Title: "Go Dev", Company: "Acme", Link: "https://acme.test/a"}, page.Items[0])
	require.NotEmpty(t, page.Next)

	decoded, err := DecodeContinuation(page.Next)
	require.NoError(t, err)
	assert.Equal(t, lastKey, decoded)
}

func TestJobAdRepo_FetchPage_ResumesFromCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)

	start := map[string]types.AttributeValue{"JobID": &types.AttributeValueMemberS{Value: "b"}}
	token, err := EncodeContinuation(start)
	require.NoError(t, err)

	client.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, start, in.ExclusiveStartKey)
			return &dynamodb.QueryOutput{}, nil
		})

	page, err := repo.FetchPage(context.Background(), model.PageRequest{Size: 20, Cursor: token})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.Next, "end of index")
}

func TestJobAdRepo_FetchPage_NeverExceedsSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)

	client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			storedItem(t, jobAdItem{JobID: "a"}),
			storedItem(t, jobAdItem{JobID: "b"}),
			storedItem(t, jobAdItem{JobID: "c"}),
		},
	}, nil)

	page, err := repo.FetchPage(context.Background(), model.PageRequest{Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestJobAdRepo_FetchPage_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)
	ctx := context.Background()

	_, err := repo.FetchPage(ctx, model.PageRequest{Size: 0})
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.FetchPage(ctx, model.PageRequest{Size: 5, Cursor: "%%%"})
	assert.True(t, apperrors.IsValidation(err), "malformed cursor never reaches the store")

	client.EXPECT().Query(gomock.Any(), gomock.Any()).
		Return(nil, &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException", Fault: smithy.FaultClient})
	_, err = repo.FetchPage(ctx, model.PageRequest{Size: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsThrottled(err))
}

// countingClient serves Select=COUNT queries split across several store pages.
type countingClient struct {
	DynamoAPI
	pages []int32
	calls int
	err   error
}

func (c *countingClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if in.Select != types.SelectCount {
		return nil, errors.New("expected a count query")
	}
	if c.err != nil && c.calls == len(c.pages) {
		return nil, c.err
	}
	i := c.calls
	c.calls++
	out := &dynamodb.QueryOutput{Count: c.pages[i]}
	if i < len(c.pages)-1 || c.err != nil {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"JobID": &types.AttributeValueMemberS{Value: "k"}}
	}
	return out, nil
}

func TestJobAdRepo_Count_FollowsContinuation(t *testing.T) {
	client := &countingClient{pages: []int32{20, 20, 5}}
	repo := newTestRepo(t, client)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, n)
	assert.Equal(t, 3, client.calls)
}

func TestJobAdRepo_Count_Error(t *testing.T) {
	client := &countingClient{pages: []int32{20}, err: context.DeadlineExceeded}
	repo := newTestRepo(t, client)

	_, err := repo.Count(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestJobAdRepo_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)
	ctx := context.Background()

	client.EXPECT().
		GetItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, &types.AttributeValueMemberS{Value: "a"}, in.Key["JobID"])
			assert.Equal(t, &types.AttributeValueMemberN{Value: "100"}, in.Key["DateAdded"])
			return &dynamodb.GetItemOutput{Item: storedItem(t, jobAdItem{JobID: "a", DateAdded: 100, Processed: "Yes", IsQualified: true})}, nil
		})

	job, err := repo.Get(ctx, "a", 100)
	require.NoError(t, err)
	assert.True(t, job.Processed)
	assert.True(t, job.IsQualified)

	client.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil)
	_, err = repo.Get(ctx, "missing", 1)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.Get(ctx, "", 1)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJobAdRepo_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)

	job := model.JobAd{
		ID: "a", DateAdded: 100, Title: "Go Dev", Company: "Acme",
		Description: "desc", Link: "https://acme.test/a",
		IsQualified: true, Processed: true, DateProcessed: 1700000500,
	}

	client.EXPECT().
		UpdateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			assert.Equal(t, testTable, aws.ToString(in.TableName))
			assert.Nil(t, in.ConditionExpression, "last write wins")
			assert.Equal(t, &types.AttributeValueMemberS{Value: "a"}, in.Key["JobID"])

			names := make([]string, 0, len(in.ExpressionAttributeNames))
			for _, name := range in.ExpressionAttributeNames {
				names = append(names, name)
			}
			assert.ElementsMatch(t, []string{
				"JobTitle", "JobDescription", "Link", "Company", "IsQualified", "DateProcessed", "Processed",
			}, names)

			values := make([]types.AttributeValue, 0, len(in.ExpressionAttributeValues))
			for _, v := range in.ExpressionAttributeValues {
				values = append(values, v)
			}
			assert.Contains(t, values, &types.AttributeValueMemberS{Value: "Yes"})
			assert.Contains(t, values, &types.AttributeValueMemberBOOL{Value: true})
			assert.Contains(t, values, &types.AttributeValueMemberN{Value: "1700000500"})
			assert.Contains(t, values, &types.AttributeValueMemberS{Value: "Go Dev"})
			require.NotNil(t, in.UpdateExpression)
			assert.Contains(t, *in.UpdateExpression, "SET")
			return &dynamodb.UpdateItemOutput{}, nil
		})

	require.NoError(t, repo.Update(context.Background(), job))
}

func TestJobAdRepo_Update_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockDynamoAPI(ctrl)
	repo := newTestRepo(t, client)

	client.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).
		Return(nil, &smithy.GenericAPIError{Code: "InternalServerError", Fault: smithy.FaultServer})

	err := repo.Update(context.Background(), model.JobAd{ID: "a", DateAdded: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}
