package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
)

// Property maps carry the describe-output fields that are not already
// extracted structurally. Name and creation time are always excluded.

func endpointProperties(output *sagemaker.DescribeEndpointOutput) map[string]string {
	props := map[string]string{
		"EndpointArn":    aws.ToString(output.EndpointArn),
		"EndpointStatus": string(output.EndpointStatus),
	}
	setProp(props, "EndpointConfigName", aws.ToString(output.EndpointConfigName))
	setProp(props, "FailureReason", aws.ToString(output.FailureReason))
	setTimeProp(props, "LastModifiedTime", output.LastModifiedTime)
	return props
}

func modelProperties(output *sagemaker.DescribeModelOutput) map[string]string {
	props := map[string]string{
		"ModelArn": aws.ToString(output.ModelArn),
	}
	setProp(props, "ExecutionRoleArn", aws.ToString(output.ExecutionRoleArn))
	if output.PrimaryContainer != nil {
		setProp(props, "PrimaryContainerImage", aws.ToString(output.PrimaryContainer.Image))
		setProp(props, "PrimaryContainerModelDataUrl", aws.ToString(output.PrimaryContainer.ModelDataUrl))
	}
	return props
}

func groupProperties(output *sagemaker.DescribeModelPackageGroupOutput) map[string]string {
	props := map[string]string{
		"ModelPackageGroupArn":    aws.ToString(output.ModelPackageGroupArn),
		"ModelPackageGroupStatus": string(output.ModelPackageGroupStatus),
	}
	setProp(props, "ModelPackageGroupDescription", aws.ToString(output.ModelPackageGroupDescription))
	if output.CreatedBy != nil {
		setProp(props, "CreatedBy", aws.ToString(output.CreatedBy.UserProfileName))
	}
	return props
}

func setProp(props map[string]string, key, value string) {
	if value != "" {
		props[key] = value
	}
}

func setTimeProp(props map[string]string, key string, t *time.Time) {
	if t != nil {
		props[key] = t.UTC().Format(time.RFC3339)
	}
}
