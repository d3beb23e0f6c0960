package reused

import (
	"testing"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/builds"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() builds.AccTestConfiguration {
	return builds.AccTestConfiguration{
		Credentials:    "creds",
		Project:        "project",
		ServiceAccount: "sa",
		Region:         "us-central1",
		Zone:           "us-central1-a",
	}
}

func TestNightlyTests(t *testing.T) {
	cron := model.NewNightlyTriggerConfiguration(model.DaysOfWeek("1-3,5-7"), model.StartHour(21))
	p, err := NightlyTests("GOOGLE", tcgen.ProviderNameGa, model.HashiCorpVCSRootGa(), testConfig(), cron)
	require.NoError(t, err)

	assert.Equal(t, "GOOGLE_NIGHTLYTESTS", p.Id)
	assert.Equal(t, "Nightly Tests", p.Name)
	assert.Contains(t, p.Description, "hashicorp/terraform-provider-google repository")

	packages, err := builds.Packages(tcgen.ProviderNameGa)
	require.NoError(t, err)
	require.Len(t, p.BuildTypes, len(packages)+1)

	for _, bt := range p.BuildTypes[:len(packages)] {
		assert.Equal(t, []model.NightlyTriggerConfiguration{cron}, bt.Triggers)
		assert.Equal(t, model.LockRead, bt.Locks[0].Mode)
	}

	sweeper := p.BuildTypes[len(packages)]
	assert.Equal(t, "GOOGLE_NIGHTLYTESTS_SERVICE_SWEEPER", sweeper.Id)
	assert.Equal(t, model.LockWrite, sweeper.Locks[0].Mode)
	assert.Equal(t, tcgen.SharedResourceNameGa, sweeper.Locks[0].Resource)
	require.Len(t, sweeper.Triggers, 1)
	// 21:00 plus five hours wraps to 02:00 the following day.
	assert.Equal(t, 2, sweeper.Triggers[0].StartHour)
	assert.Equal(t, "1-4,6,7", sweeper.Triggers[0].DaysOfWeek)

	_, err = NightlyTests("GOOGLE", "google-alpha", model.HashiCorpVCSRootGa(), testConfig(), cron)
	assert.Error(t, err)
}

func TestMMUpstream(t *testing.T) {
	cron := model.NewNightlyTriggerConfiguration()
	p, err := MMUpstream("GOOGLE_BETA", tcgen.ProviderNameBeta, model.ModularMagicianVCSRootBeta(), model.HashiCorpVCSRootBeta(), testConfig(), cron)
	require.NoError(t, err)

	assert.Equal(t, "GOOGLE_BETA_MMUPSTREAMTESTS", p.Id)
	assert.Equal(t, "Upstream MM Testing", p.Name)
	assert.Contains(t, p.Description, "modular-magician/terraform-provider-google-beta repository")

	n := len(p.BuildTypes)
	require.True(t, n > 2)
	for _, bt := range p.BuildTypes[:n-2] {
		assert.Empty(t, bt.Triggers, bt.Id)
		assert.Equal(t, model.ModularMagicianVCSRootBeta(), bt.VCSRoot)
		assert.Equal(t, []model.ResourceLock{{Resource: tcgen.SharedResourceNameVcr, Mode: model.LockRead}}, bt.Locks)
	}

	adHoc, cronSweeper := p.BuildTypes[n-2], p.BuildTypes[n-1]
	assert.Equal(t, tcgen.ServiceSweeperName, adHoc.Name)
	assert.Empty(t, adHoc.Triggers)
	assert.Equal(t, model.ModularMagicianVCSRootBeta(), adHoc.VCSRoot)

	assert.Equal(t, tcgen.ServiceSweeperCronName, cronSweeper.Name)
	assert.Equal(t, []model.NightlyTriggerConfiguration{cron}, cronSweeper.Triggers)
	assert.Equal(t, model.HashiCorpVCSRootBeta(), cronSweeper.VCSRoot)

	_, err = MMUpstream("GOOGLE", "google-alpha", model.ModularMagicianVCSRootGa(), model.HashiCorpVCSRootGa(), testConfig(), cron)
	assert.Error(t, err)
}

func TestZeroTriggerMeansDefaults(t *testing.T) {
	t.Run("MMUpstream", func(t *testing.T) {
		p, err := MMUpstream("GOOGLE", tcgen.ProviderNameGa, model.ModularMagicianVCSRootGa(), model.HashiCorpVCSRootGa(), testConfig(), model.NightlyTriggerConfiguration{})
		require.NoError(t, err)

		cronSweeper := p.BuildTypes[len(p.BuildTypes)-1]
		require.Equal(t, "GOOGLE_MMUPSTREAMTESTS_SERVICE_SWEEPER__CRON", cronSweeper.Id)
		assert.Equal(t, []model.NightlyTriggerConfiguration{model.NewNightlyTriggerConfiguration()}, cronSweeper.Triggers)
		assert.NoError(t, cronSweeper.Triggers[0].Validate())
	})
	t.Run("NightlyTests", func(t *testing.T) {
		p, err := NightlyTests("GOOGLE", tcgen.ProviderNameGa, model.HashiCorpVCSRootGa(), testConfig(),
			model.NightlyTriggerConfiguration{DaysOfWeek: "1-3,5-7"})
		require.NoError(t, err)

		expected := model.NewNightlyTriggerConfiguration(model.DaysOfWeek("1-3,5-7"))
		assert.Equal(t, []model.NightlyTriggerConfiguration{expected}, p.BuildTypes[0].Triggers)
		assert.Equal(t, tcgen.DefaultBranchName, p.BuildTypes[len(p.BuildTypes)-1].Triggers[0].Branch)
	})
}
