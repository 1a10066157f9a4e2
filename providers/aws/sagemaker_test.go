package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/sagescan/correlator"
)

// fakeSageMaker serves list results one page at a time, keyed by the
// NextToken the paginator hands back.
type fakeSageMaker struct {
	endpointPages []*sagemaker.ListEndpointsOutput
	modelPages    []*sagemaker.ListModelsOutput
	groupPages    []*sagemaker.ListModelPackageGroupsOutput

	describeEndpoint *sagemaker.DescribeEndpointOutput
	describeModel    *sagemaker.DescribeModelOutput
	describeGroup    *sagemaker.DescribeModelPackageGroupOutput

	listEndpointsErr error
}

func pageIndex(token *string) int {
	if token == nil {
		return 0
	}
	return int((*token)[0] - '0')
}

func pageToken(next, total int) *string {
	if next >= total {
		return nil
	}
	return aws.String(string(rune('0' + next)))
}

func (f *fakeSageMaker) ListEndpoints(ctx context.Context, params *sagemaker.ListEndpointsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListEndpointsOutput, error) {
	if f.listEndpointsErr != nil {
		return nil, f.listEndpointsErr
	}
	i := pageIndex(params.NextToken)
	out := *f.endpointPages[i]
	out.NextToken = pageToken(i+1, len(f.endpointPages))
	return &out, nil
}

func (f *fakeSageMaker) DescribeEndpoint(ctx context.Context, params *sagemaker.DescribeEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error) {
	return f.describeEndpoint, nil
}

func (f *fakeSageMaker) ListModels(ctx context.Context, params *sagemaker.ListModelsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListModelsOutput, error) {
	i := pageIndex(params.NextToken)
	out := *f.modelPages[i]
	out.NextToken = pageToken(i+1, len(f.modelPages))
	return &out, nil
}

func (f *fakeSageMaker) DescribeModel(ctx context.Context, params *sagemaker.DescribeModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeModelOutput, error) {
	return f.describeModel, nil
}

func (f *fakeSageMaker) ListModelPackageGroups(ctx context.Context, params *sagemaker.ListModelPackageGroupsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListModelPackageGroupsOutput, error) {
	i := pageIndex(params.NextToken)
	out := *f.groupPages[i]
	out.NextToken = pageToken(i+1, len(f.groupPages))
	return &out, nil
}

func (f *fakeSageMaker) DescribeModelPackageGroup(ctx context.Context, params *sagemaker.DescribeModelPackageGroupInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeModelPackageGroupOutput, error) {
	return f.describeGroup, nil
}

func TestListEndpointsPagination(t *testing.T) {
	fake := &fakeSageMaker{
		endpointPages: []*sagemaker.ListEndpointsOutput{
			{Endpoints: []types.EndpointSummary{
				{EndpointName: aws.String("ep-a"), EndpointArn: aws.String("arn:ep/a")},
				{EndpointName: aws.String("ep-b"), EndpointArn: aws.String("arn:ep/b")},
			}},
			{Endpoints: []types.EndpointSummary{
				{EndpointName: aws.String("ep-c"), EndpointArn: aws.String("arn:ep/c")},
			}},
		},
	}

	dir := NewDirectoryWithClient(fake)
	endpoints, err := dir.ListEndpoints(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []correlator.EndpointSummary{
		{Name: "ep-a", ARN: "arn:ep/a"},
		{Name: "ep-b", ARN: "arn:ep/b"},
		{Name: "ep-c", ARN: "arn:ep/c"},
	}, endpoints)
}

func TestListEndpointsError(t *testing.T) {
	fake := &fakeSageMaker{listEndpointsErr: errors.New("throttled")}

	dir := NewDirectoryWithClient(fake)
	_, err := dir.ListEndpoints(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list endpoints")
}

func TestListModelsPagination(t *testing.T) {
	fake := &fakeSageMaker{
		modelPages: []*sagemaker.ListModelsOutput{
			{Models: []types.ModelSummary{{ModelName: aws.String("model-a"), ModelArn: aws.String("arn:model/a")}}},
			{Models: []types.ModelSummary{{ModelName: aws.String("model-b"), ModelArn: aws.String("arn:model/b")}}},
		},
	}

	dir := NewDirectoryWithClient(fake)
	models, err := dir.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []correlator.ModelSummary{
		{Name: "model-a", ARN: "arn:model/a"},
		{Name: "model-b", ARN: "arn:model/b"},
	}, models)
}

func TestListGroupsPagination(t *testing.T) {
	fake := &fakeSageMaker{
		groupPages: []*sagemaker.ListModelPackageGroupsOutput{
			{ModelPackageGroupSummaryList: []types.ModelPackageGroupSummary{
				{ModelPackageGroupName: aws.String("group-a")},
			}},
			{ModelPackageGroupSummaryList: []types.ModelPackageGroupSummary{
				{ModelPackageGroupName: aws.String("group-b")},
			}},
		},
	}

	dir := NewDirectoryWithClient(fake)
	groups, err := dir.ListGroups(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []correlator.GroupSummary{{Name: "group-a"}, {Name: "group-b"}}, groups)
}

func TestDescribeEndpointConversion(t *testing.T) {
	created := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	modified := created.Add(2 * time.Hour)

	fake := &fakeSageMaker{
		describeEndpoint: &sagemaker.DescribeEndpointOutput{
			EndpointName:       aws.String("ep-a"),
			EndpointArn:        aws.String("arn:ep/a"),
			EndpointStatus:     types.EndpointStatusInService,
			EndpointConfigName: aws.String("ep-a-config"),
			CreationTime:       &created,
			LastModifiedTime:   &modified,
		},
	}

	dir := NewDirectoryWithClient(fake)
	detail, err := dir.DescribeEndpoint(context.Background(), "ep-a")
	require.NoError(t, err)

	assert.Equal(t, "ep-a", detail.Name)
	assert.Equal(t, "arn:ep/a", detail.ARN)
	assert.Equal(t, "InService", detail.Status)
	assert.Equal(t, &created, detail.CreationTime)

	assert.Equal(t, "arn:ep/a", detail.Properties["EndpointArn"])
	assert.Equal(t, "InService", detail.Properties["EndpointStatus"])
	assert.Equal(t, "ep-a-config", detail.Properties["EndpointConfigName"])
	assert.Equal(t, "2023-04-01T14:00:00Z", detail.Properties["LastModifiedTime"])

	// Name and creation time are structural fields, not properties.
	assert.NotContains(t, detail.Properties, "EndpointName")
	assert.NotContains(t, detail.Properties, "CreationTime")
	assert.NotContains(t, detail.Properties, "FailureReason")
}

func TestDescribeModelConversion(t *testing.T) {
	created := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)

	fake := &fakeSageMaker{
		describeModel: &sagemaker.DescribeModelOutput{
			ModelName:        aws.String("model-a"),
			ModelArn:         aws.String("arn:model/a"),
			ExecutionRoleArn: aws.String("arn:role/exec"),
			CreationTime:     &created,
			PrimaryContainer: &types.ContainerDefinition{
				Image:        aws.String("1234.dkr.ecr.us-east-1.amazonaws.com/serving:1"),
				ModelDataUrl: aws.String("s3://bucket/model-a/model.tar.gz"),
			},
			Containers: []types.ContainerDefinition{
				{ModelDataUrl: aws.String("s3://bucket/model-a/extra.tar.gz")},
				{Image: aws.String("image-only:1")},
			},
		},
	}

	dir := NewDirectoryWithClient(fake)
	detail, err := dir.DescribeModel(context.Background(), "model-a")
	require.NoError(t, err)

	assert.Equal(t, "model-a", detail.Name)
	assert.Equal(t, "arn:model/a", detail.ARN)
	assert.Equal(t, "1234.dkr.ecr.us-east-1.amazonaws.com/serving:1", detail.Image)
	assert.Equal(t, "s3://bucket/model-a/model.tar.gz", detail.ModelDataURL)
	// Containers without a model-data URL contribute nothing.
	assert.Equal(t, []string{"s3://bucket/model-a/extra.tar.gz"}, detail.ContainerDataURLs)

	assert.Equal(t, "arn:role/exec", detail.Properties["ExecutionRoleArn"])
	assert.Equal(t, "s3://bucket/model-a/model.tar.gz", detail.Properties["PrimaryContainerModelDataUrl"])
}

func TestDescribeModelNoPrimaryContainer(t *testing.T) {
	fake := &fakeSageMaker{
		describeModel: &sagemaker.DescribeModelOutput{
			ModelName: aws.String("model-bare"),
			ModelArn:  aws.String("arn:model/bare"),
		},
	}

	dir := NewDirectoryWithClient(fake)
	detail, err := dir.DescribeModel(context.Background(), "model-bare")
	require.NoError(t, err)

	assert.Empty(t, detail.Image)
	assert.Empty(t, detail.ModelDataURL)
	assert.Empty(t, detail.ContainerDataURLs)
}

func TestDescribeGroupConversion(t *testing.T) {
	created := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)

	fake := &fakeSageMaker{
		describeGroup: &sagemaker.DescribeModelPackageGroupOutput{
			ModelPackageGroupName:        aws.String("group-a"),
			ModelPackageGroupArn:         aws.String("arn:group/a"),
			ModelPackageGroupDescription: aws.String("candidate models"),
			ModelPackageGroupStatus:      types.ModelPackageGroupStatusCompleted,
			CreationTime:                 &created,
			CreatedBy:                    &types.UserContext{UserProfileName: aws.String("alice")},
		},
	}

	dir := NewDirectoryWithClient(fake)
	detail, err := dir.DescribeGroup(context.Background(), "group-a")
	require.NoError(t, err)

	assert.Equal(t, "group-a", detail.Name)
	assert.Equal(t, "arn:group/a", detail.ARN)
	assert.Equal(t, "candidate models", detail.Description)
	assert.Equal(t, "alice", detail.CreatedBy)
	assert.Equal(t, "Completed", detail.Properties["ModelPackageGroupStatus"])
	assert.Equal(t, "alice", detail.Properties["CreatedBy"])
}

func TestDescribeGroupNoCreator(t *testing.T) {
	fake := &fakeSageMaker{
		describeGroup: &sagemaker.DescribeModelPackageGroupOutput{
			ModelPackageGroupName: aws.String("group-b"),
			ModelPackageGroupArn:  aws.String("arn:group/b"),
		},
	}

	dir := NewDirectoryWithClient(fake)
	detail, err := dir.DescribeGroup(context.Background(), "group-b")
	require.NoError(t, err)

	assert.Empty(t, detail.CreatedBy)
	assert.NotContains(t, detail.Properties, "CreatedBy")
}
