package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeURNs(t *testing.T) {
	assert.Equal(t,
		"urn:li:mlModel:(urn:li:dataPlatform:sagemaker,the-model,PROD)",
		MakeModelURN("the-model", "PROD"))
	assert.Equal(t,
		"urn:li:mlModelDeployment:(urn:li:dataPlatform:sagemaker,the-endpoint,DEV)",
		MakeDeploymentURN("the-endpoint", "DEV"))
	assert.Equal(t,
		"urn:li:mlModelGroup:(urn:li:dataPlatform:sagemaker,the-group,PROD)",
		MakeGroupURN("the-group", "PROD"))
}

func TestRecordKinds(t *testing.T) {
	var _ Record = (*Endpoint)(nil)
	var _ Record = (*Model)(nil)
	var _ Record = (*Group)(nil)

	ep := &Endpoint{URN: "urn:ep"}
	assert.Equal(t, KindEndpoint, ep.RecordKind())
	assert.Equal(t, "urn:ep", ep.RecordURN())

	assert.Equal(t, KindModel, (&Model{}).RecordKind())
	assert.Equal(t, KindGroup, (&Group{}).RecordKind())
}
