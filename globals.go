package tcgen

const (
	// ClientVersion is the version of the generator binary.
	ClientVersion = "2024-11-05"

	// DefaultConfigFileName is looked up in the user's home directory when
	// no context parameter file is given on the command line.
	DefaultConfigFileName = ".tcgen.yml"

	// EnvPrefix prefixes environment variables that override context
	// parameters, e.g. TCGEN_GA_PROJECT.
	EnvPrefix = "TCGEN_"

	ProviderNameGa   = "google"
	ProviderNameBeta = "google-beta"

	DefaultRepoOwner         = "hashicorp"
	ModularMagicianRepoOwner = "modular-magician"

	// Project id suffixes for the generated subprojects.
	NightlyTestsProjectId = "NIGHTLYTESTS"
	MMUpstreamProjectId   = "MMUPSTREAMTESTS"

	// TeamCity allows ids of up to 225 characters.
	MaxIdLength = 225
)

// Trigger defaults. TeamCity numbers days of the week Sun=1...Sat=7 and
// evaluates schedules in the server's timezone.
const (
	DefaultBranchName  = "refs/heads/main"
	DefaultStartHour   = 4
	DefaultDaysOfWeek  = "*"
	DefaultDaysOfMonth = "*"
	TriggerTimezone    = "SERVER"

	// SweeperStartHourOffset is the number of hours after the nightly
	// tests start that the service sweeper runs.
	SweeperStartHourOffset = 5
)

// Acceptance test defaults.
const (
	DefaultParallelism          = 12
	DefaultTestTimeoutHours     = 12
	DefaultTestPrefix           = "TestAcc"
	DefaultTerraformCoreVersion = "1.10.0"
	DefaultGoVersion            = "1.23"
	DefaultRegion               = "us-central1"
	DefaultZone                 = "us-central1-a"

	// Execution timeout for a single package build, in minutes.
	DefaultBuildTimeoutMin = 60 * (DefaultTestTimeoutHours + 1)
	SweeperTimeoutMin      = 60 * 3
)

// Names of the TeamCity shared resources that keep sweepers from deleting
// resources while tests are running against the same project.
const (
	SharedResourceNameGa   = "ci-test-project-nightly-services"
	SharedResourceNameBeta = "ci-test-project-nightly-beta-services"
	SharedResourceNameVcr  = "ci-test-project-vcr-services"
)

const (
	ServiceSweeperName     = "Service Sweeper"
	ServiceSweeperCronName = "Service Sweeper - Cron"

	// SweeperRegions lists the regions the service sweeper cleans up.
	SweeperRegions = "us-central1,us-east1,us-west1,europe-west1,asia-east1"
)

// ProviderNames lists every provider version the generator knows about.
var ProviderNames = []string{ProviderNameGa, ProviderNameBeta}
