package record

import "fmt"

// Platform is the data platform component of every URN this scanner emits.
const Platform = "sagemaker"

func platformURN() string {
	return fmt.Sprintf("urn:li:dataPlatform:%s", Platform)
}

// MakeModelURN builds the catalog URN for a model.
func MakeModelURN(name, env string) string {
	return fmt.Sprintf("urn:li:mlModel:(%s,%s,%s)", platformURN(), name, env)
}

// MakeDeploymentURN builds the catalog URN for a deployed endpoint.
func MakeDeploymentURN(name, env string) string {
	return fmt.Sprintf("urn:li:mlModelDeployment:(%s,%s,%s)", platformURN(), name, env)
}

// MakeGroupURN builds the catalog URN for a model group.
func MakeGroupURN(name, env string) string {
	return fmt.Sprintf("urn:li:mlModelGroup:(%s,%s,%s)", platformURN(), name, env)
}
