// Package aws implements the model directory client over the SageMaker API.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"

	"github.com/yairfalse/sagescan/correlator"
)

// Directory lists and describes SageMaker endpoints, models and model
// package groups. List calls follow the pagination cursor until
// exhausted and return the full listing; ordering is left to the
// caller. Retry and backoff belong to the SDK client.
type Directory struct {
	client SageMakerAPI
}

// NewDirectory creates a directory client using the default AWS
// credential chain for the given region.
func NewDirectory(ctx context.Context, region string) (*Directory, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Directory{client: sagemaker.NewFromConfig(cfg)}, nil
}

// NewDirectoryWithClient wraps an existing SageMaker client.
func NewDirectoryWithClient(client SageMakerAPI) *Directory {
	return &Directory{client: client}
}

// ListEndpoints returns all endpoints, all pages concatenated.
func (d *Directory) ListEndpoints(ctx context.Context) ([]correlator.EndpointSummary, error) {
	paginator := sagemaker.NewListEndpointsPaginator(d.client, &sagemaker.ListEndpointsInput{})

	var endpoints []correlator.EndpointSummary
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list endpoints: %w", err)
		}

		for _, ep := range output.Endpoints {
			endpoints = append(endpoints, correlator.EndpointSummary{
				Name: aws.ToString(ep.EndpointName),
				ARN:  aws.ToString(ep.EndpointArn),
			})
		}
	}

	return endpoints, nil
}

// DescribeEndpoint fetches the detail payload for one endpoint.
func (d *Directory) DescribeEndpoint(ctx context.Context, name string) (*correlator.EndpointDetail, error) {
	output, err := d.client.DescribeEndpoint(ctx, &sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe endpoint %s: %w", name, err)
	}

	return &correlator.EndpointDetail{
		Name:         aws.ToString(output.EndpointName),
		ARN:          aws.ToString(output.EndpointArn),
		Status:       string(output.EndpointStatus),
		CreationTime: output.CreationTime,
		Properties:   endpointProperties(output),
	}, nil
}

// ListModels returns all models, all pages concatenated.
func (d *Directory) ListModels(ctx context.Context) ([]correlator.ModelSummary, error) {
	paginator := sagemaker.NewListModelsPaginator(d.client, &sagemaker.ListModelsInput{})

	var models []correlator.ModelSummary
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}

		for _, m := range output.Models {
			models = append(models, correlator.ModelSummary{
				Name: aws.ToString(m.ModelName),
				ARN:  aws.ToString(m.ModelArn),
			})
		}
	}

	return models, nil
}

// DescribeModel fetches the detail payload for one model.
func (d *Directory) DescribeModel(ctx context.Context, name string) (*correlator.ModelDetail, error) {
	output, err := d.client.DescribeModel(ctx, &sagemaker.DescribeModelInput{
		ModelName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe model %s: %w", name, err)
	}

	detail := &correlator.ModelDetail{
		Name:         aws.ToString(output.ModelName),
		ARN:          aws.ToString(output.ModelArn),
		CreationTime: output.CreationTime,
		Properties:   modelProperties(output),
	}

	if output.PrimaryContainer != nil {
		detail.Image = aws.ToString(output.PrimaryContainer.Image)
		detail.ModelDataURL = aws.ToString(output.PrimaryContainer.ModelDataUrl)
	}
	for _, container := range output.Containers {
		if url := aws.ToString(container.ModelDataUrl); url != "" {
			detail.ContainerDataURLs = append(detail.ContainerDataURLs, url)
		}
	}

	return detail, nil
}

// ListGroups returns all model package groups, all pages concatenated.
func (d *Directory) ListGroups(ctx context.Context) ([]correlator.GroupSummary, error) {
	paginator := sagemaker.NewListModelPackageGroupsPaginator(d.client, &sagemaker.ListModelPackageGroupsInput{})

	var groups []correlator.GroupSummary
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list model package groups: %w", err)
		}

		for _, g := range output.ModelPackageGroupSummaryList {
			groups = append(groups, correlator.GroupSummary{
				Name: aws.ToString(g.ModelPackageGroupName),
			})
		}
	}

	return groups, nil
}

// DescribeGroup fetches the detail payload for one model package group.
func (d *Directory) DescribeGroup(ctx context.Context, name string) (*correlator.GroupDetail, error) {
	output, err := d.client.DescribeModelPackageGroup(ctx, &sagemaker.DescribeModelPackageGroupInput{
		ModelPackageGroupName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe model package group %s: %w", name, err)
	}

	detail := &correlator.GroupDetail{
		Name:         aws.ToString(output.ModelPackageGroupName),
		ARN:          aws.ToString(output.ModelPackageGroupArn),
		Description:  aws.ToString(output.ModelPackageGroupDescription),
		CreationTime: output.CreationTime,
		Properties:   groupProperties(output),
	}

	if output.CreatedBy != nil {
		detail.CreatedBy = aws.ToString(output.CreatedBy.UserProfileName)
	}

	return detail, nil
}

// Ensure Directory satisfies the correlator contract.
var _ correlator.Directory = (*Directory)(nil)
