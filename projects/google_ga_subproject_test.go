package projects

import (
	"testing"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContextParameters() *tcgen.AllContextParameters {
	set := func(name string) tcgen.CredentialSet {
		return tcgen.CredentialSet{
			Credentials:    "credentialsJSON:" + name,
			ServiceAccount: name + "@example.iam.gserviceaccount.com",
			Project:        name + "-project",
		}
	}
	return &tcgen.AllContextParameters{
		Ga:             set("ga"),
		Beta:           set("beta"),
		Vcr:            set("vcr"),
		BillingAccount: "000000-000000-000000",
		Org:            "1234",
		Region:         "us-central1",
		Zone:           "us-central1-a",
		VcrBucketName:  "vcr-bucket",
	}
}

func TestGoogleSubProjectGa(t *testing.T) {
	Convey("When assembling the GA subproject", t, func() {
		p, err := GoogleSubProjectGa(testContextParameters())
		So(err, ShouldBeNil)

		Convey("it should be identified and described as the Google project", func() {
			So(p.Id, ShouldEqual, model.ReplaceCharsId("GOOGLE"))
			So(p.Name, ShouldEqual, "Google")
			So(p.Description, ShouldEqual, "Subproject containing builds for testing the GA version of the Google provider")
		})

		Convey("it should apply read-only settings", func() {
			So(p.Params.IsReadOnly(), ShouldBeTrue)
			So(p.Params, ShouldResemble, model.ReadOnlySettings())
		})

		Convey("it should contain nightly tests then MM upstream", func() {
			So(p.SubProjectIds(), ShouldResemble, []string{"GOOGLE_NIGHTLYTESTS", "GOOGLE_MMUPSTREAMTESTS"})
			So(p.BuildTypes, ShouldBeEmpty)
		})

		Convey("the nightly tests should run every night except Wednesday", func() {
			nightly := p.SubProjects[0]
			So(nightly.BuildTypes, ShouldNotBeEmpty)
			for _, bt := range nightly.BuildTypes {
				So(bt.VCSRoot, ShouldResemble, model.HashiCorpVCSRootGa())
				So(bt.Triggers, ShouldHaveLength, 1)

				days, err := bt.Triggers[0].Days()
				So(err, ShouldBeNil)
				So(days, ShouldNotContain, 4)
				for _, d := range []int{1, 2, 3, 5, 6, 7} {
					So(days, ShouldContain, d)
				}
			}

			pkg, ok := nightly.FindBuildType("GOOGLE_NIGHTLYTESTS_PACKAGE_COMPUTE")
			So(ok, ShouldBeTrue)
			So(pkg.Triggers[0], ShouldResemble, model.NewNightlyTriggerConfiguration(model.DaysOfWeek("1-3,5-7")))
		})

		Convey("the nightly tests should use the GA identity", func() {
			project, ok := p.SubProjects[0].Params.Get("env.GOOGLE_PROJECT")
			So(ok, ShouldBeTrue)
			So(project.Value, ShouldEqual, "ga-project")
		})

		Convey("MM upstream should use the default trigger and the VCR identity", func() {
			upstream := p.SubProjects[1]
			project, ok := upstream.Params.Get("env.GOOGLE_PROJECT")
			So(ok, ShouldBeTrue)
			So(project.Value, ShouldEqual, "vcr-project")

			var scheduled []model.BuildType
			for _, bt := range upstream.BuildTypes {
				if len(bt.Triggers) > 0 {
					scheduled = append(scheduled, bt)
				}
			}
			So(scheduled, ShouldHaveLength, 1)
			So(scheduled[0].Name, ShouldEqual, tcgen.ServiceSweeperCronName)
			So(scheduled[0].Triggers[0], ShouldResemble, model.NewNightlyTriggerConfiguration())
			So(scheduled[0].VCSRoot, ShouldResemble, model.HashiCorpVCSRootGa())

			pkg, ok := upstream.FindBuildType("GOOGLE_MMUPSTREAMTESTS_PACKAGE_COMPUTE")
			So(ok, ShouldBeTrue)
			So(pkg.VCSRoot, ShouldResemble, model.ModularMagicianVCSRootGa())
			So(pkg.Triggers, ShouldBeEmpty)
		})
	})
}

func TestGoogleSubProjectGaIsDeterministic(t *testing.T) {
	params := testContextParameters()

	first, err := GoogleSubProjectGa(params)
	require.NoError(t, err)
	second, err := GoogleSubProjectGa(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, testContextParameters(), params)
}

func TestNightlySettings(t *testing.T) {
	params := testContextParameters()
	hour := 1
	params.Nightly = tcgen.NightlySettings{
		Branch:      "refs/heads/release",
		StartHour:   &hour,
		DaysOfMonth: "1-28",
		Disabled:    true,
	}

	p, err := GoogleSubProjectGa(params)
	require.NoError(t, err)

	pkg, ok := p.FindBuildType("GOOGLE_NIGHTLYTESTS_PACKAGE_COMPUTE")
	require.True(t, ok)
	require.Len(t, pkg.Triggers, 1)
	trigger := pkg.Triggers[0]
	assert.Equal(t, "refs/heads/release", trigger.Branch)
	assert.Equal(t, 1, trigger.StartHour)
	assert.Equal(t, "1-28", trigger.DaysOfMonth)
	assert.Equal(t, "1-3,5-7", trigger.DaysOfWeek)
	assert.False(t, trigger.Enabled)

	sweeper, ok := p.FindBuildType("GOOGLE_NIGHTLYTESTS_SERVICE_SWEEPER")
	require.True(t, ok)
	assert.Equal(t, 6, sweeper.Triggers[0].StartHour)

	// The upstream sweeper keeps the default schedule.
	cronSweeper, ok := p.FindBuildType("GOOGLE_MMUPSTREAMTESTS_SERVICE_SWEEPER__CRON")
	require.True(t, ok)
	assert.Equal(t, model.NewNightlyTriggerConfiguration(), cronSweeper.Triggers[0])

	beta, err := GoogleSubProjectBeta(params)
	require.NoError(t, err)
	betaPkg, ok := beta.FindBuildType("GOOGLE_BETA_NIGHTLYTESTS_PACKAGE_APPHUB")
	require.True(t, ok)
	assert.Equal(t, "refs/heads/release", betaPkg.Triggers[0].Branch)
	assert.Equal(t, "*", betaPkg.Triggers[0].DaysOfWeek)
}

func TestGoogleSubProjectBeta(t *testing.T) {
	p, err := GoogleSubProjectBeta(testContextParameters())
	require.NoError(t, err)

	assert.Equal(t, "GOOGLE_BETA", p.Id)
	assert.Equal(t, []string{"GOOGLE_BETA_NIGHTLYTESTS", "GOOGLE_BETA_MMUPSTREAMTESTS"}, p.SubProjectIds())

	pkg, ok := p.FindBuildType("GOOGLE_BETA_NIGHTLYTESTS_PACKAGE_APPHUB")
	require.True(t, ok)
	require.Len(t, pkg.Triggers, 1)
	assert.True(t, pkg.Triggers[0].EveryDay())
	assert.Equal(t, []model.ResourceLock{{Resource: tcgen.SharedResourceNameBeta, Mode: model.LockRead}}, pkg.Locks)
}

func TestGoogleCloudRootProject(t *testing.T) {
	p, err := GoogleCloudRootProject(testContextParameters())
	require.NoError(t, err)

	assert.Equal(t, RootProjectId, p.Id)
	assert.Equal(t, []string{"GOOGLE", "GOOGLE_BETA"}, p.SubProjectIds())
	assert.Len(t, p.VCSRoots, 4)
	assert.Len(t, p.SharedResources, 3)
	assert.True(t, p.Params.IsReadOnly())

	ids := map[string]bool{}
	for _, bt := range p.AllBuildTypes() {
		assert.False(t, ids[bt.Id], bt.Id)
		ids[bt.Id] = true
	}
}

func TestAssemble(t *testing.T) {
	assert.Equal(t, []string{"beta", "ga", "root"}, Names())

	p, err := Assemble("ga", testContextParameters())
	require.NoError(t, err)
	assert.Equal(t, "GOOGLE", p.Id)

	_, err = Assemble("alpha", testContextParameters())
	assert.Error(t, err)

	_, err = Assemble("ga", nil)
	assert.Error(t, err)
}
