package tcgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ContextParametersSuite struct {
	params *AllContextParameters
	suite.Suite
}

func TestContextParametersSuite(t *testing.T) {
	suite.Run(t, new(ContextParametersSuite))
}

func (s *ContextParametersSuite) SetupTest() {
	set := func(name string) CredentialSet {
		return CredentialSet{
			Credentials:    "credentialsJSON:" + name,
			ServiceAccount: name + "@example.iam.gserviceaccount.com",
			Project:        name + "-project",
		}
	}
	s.params = &AllContextParameters{
		Ga:             set("ga"),
		Beta:           set("beta"),
		Vcr:            set("vcr"),
		BillingAccount: "000000-000000-000000",
		Org:            "1234",
		VcrBucketName:  "vcr-bucket",
	}
}

func (s *ContextParametersSuite) TestValidateAndDefaultFillsLocation() {
	s.Require().NoError(s.params.ValidateAndDefault())
	s.Equal(DefaultRegion, s.params.Region)
	s.Equal(DefaultZone, s.params.Zone)
}

func (s *ContextParametersSuite) TestValidateAndDefaultKeepsLocation() {
	s.params.Region = "europe-west1"
	s.params.Zone = "europe-west1-b"
	s.Require().NoError(s.params.ValidateAndDefault())
	s.Equal("europe-west1-b", s.params.Zone)
}

func (s *ContextParametersSuite) TestZoneMustBeInRegion() {
	s.params.Region = "europe-west1"
	s.params.Zone = "us-central1-a"
	s.Error(s.params.ValidateAndDefault())
}

func (s *ContextParametersSuite) TestRequiredValues() {
	s.params.BillingAccount = ""
	s.params.Vcr.ServiceAccount = ""
	err := s.params.ValidateAndDefault()
	s.Require().Error(err)
	s.Contains(err.Error(), "billing account")
	s.Contains(err.Error(), "VCR credentials")
}

func (s *ContextParametersSuite) TestApplyOverrides() {
	s.Require().NoError(s.params.ApplyOverrides([]string{
		"ga.project=other-project",
		"org_domain=example.com",
		"zone=us-central1-b",
	}))
	s.Equal("other-project", s.params.Ga.Project)
	s.Equal("ga@example.iam.gserviceaccount.com", s.params.Ga.ServiceAccount)
	s.Equal("example.com", s.params.OrgDomain)
	s.Equal("us-central1-b", s.params.Zone)
	s.Equal("beta-project", s.params.Beta.Project)
}

func (s *ContextParametersSuite) TestNightlySettings() {
	s.Require().NoError(s.params.ApplyOverrides([]string{
		"nightly.start_hour=0",
		"nightly.disabled=true",
		"nightly.branch=refs/heads/release",
	}))
	s.Require().NotNil(s.params.Nightly.StartHour)
	s.Equal(0, *s.params.Nightly.StartHour)
	s.True(s.params.Nightly.Disabled)
	s.Equal("refs/heads/release", s.params.Nightly.Branch)
	s.NoError(s.params.ValidateAndDefault())

	s.Require().NoError(s.params.ApplyOverrides([]string{"nightly.start_hour=24"}))
	err := s.params.ValidateAndDefault()
	s.Require().Error(err)
	s.Contains(err.Error(), "nightly start hour 24")

	s.Error(s.params.ApplyOverrides([]string{"nightly.start_hour=late"}))
}

func (s *ContextParametersSuite) TestApplyOverridesRejectsUnknownKeys() {
	s.Error(s.params.ApplyOverrides([]string{"nope=x"}))
	s.Error(s.params.ApplyOverrides([]string{"ga.nope=x"}))
	s.Error(s.params.ApplyOverrides([]string{"ga"}))
}

func (s *ContextParametersSuite) TestApplyEnvironment() {
	env := map[string]string{
		"TCGEN_VCR_PROJECT":     "env-vcr-project",
		"TCGEN_VCR_BUCKET_NAME": "env-bucket",
		"UNRELATED":             "x",
	}
	s.Require().NoError(s.params.ApplyEnvironment(func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}))
	s.Equal("env-vcr-project", s.params.Vcr.Project)
	s.Equal("env-bucket", s.params.VcrBucketName)
	s.Equal("ga-project", s.params.Ga.Project)
}

func TestParameterKeys(t *testing.T) {
	keys := ParameterKeys()
	assert.Contains(t, keys, "ga.credentials")
	assert.Contains(t, keys, "vcr.org_2")
	assert.Contains(t, keys, "billing_account")
	assert.Contains(t, keys, "vcr_bucket_name")
	assert.Contains(t, keys, "nightly.start_hour")
	assert.Contains(t, keys, "nightly.disabled")
	assert.NotContains(t, keys, "ga")
	assert.NotContains(t, keys, "nightly")
	assert.Equal(t, "TCGEN_GA_SERVICE_ACCOUNT", EnvVarName("ga.service_account"))
}

func TestLoadContextParameters(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid", func(t *testing.T) {
		fn := filepath.Join(dir, "valid.yml")
		require.NoError(t, os.WriteFile(fn, []byte("org: \"1234\"\nga:\n  project: ga-project\n"), 0644))
		params, err := LoadContextParameters(fn)
		require.NoError(t, err)
		assert.Equal(t, "1234", params.Org)
		assert.Equal(t, "ga-project", params.Ga.Project)
	})
	t.Run("UnknownKey", func(t *testing.T) {
		fn := filepath.Join(dir, "unknown.yml")
		require.NoError(t, os.WriteFile(fn, []byte("organization: \"1234\"\n"), 0644))
		_, err := LoadContextParameters(fn)
		assert.Error(t, err)
	})
	t.Run("ExampleFile", func(t *testing.T) {
		params, err := LoadContextParameters("tcgen.example.yml")
		require.NoError(t, err)
		assert.NoError(t, params.ValidateAndDefault())
		assert.Equal(t, "vcr-project", params.Vcr.Project)
	})
	t.Run("Missing", func(t *testing.T) {
		_, err := LoadContextParameters(filepath.Join(dir, "missing.yml"))
		assert.Error(t, err)
	})
}
