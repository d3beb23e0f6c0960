package builds

import (
	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/model"
)

// AccTestConfiguration holds the values an acceptance test run needs to
// authenticate and place resources. It is derived from the context
// parameters for one of the GA, Beta or VCR environments.
type AccTestConfiguration struct {
	BillingAccount       string
	BillingAccount2      string
	ChronicleInstanceId  string
	Credentials          string
	CustId               string
	FirestoreProject     string
	IdentityUser         string
	MasterBillingAccount string
	Org                  string
	Org2                 string
	OrgDomain            string
	Project              string
	ProjectNumber        string
	Region               string
	ServiceAccount       string
	VmwareengineProject  string
	Zone                 string

	// Only set for VCR builds.
	InfraProject  string
	VcrBucketName string
}

func newAccTestConfiguration(set tcgen.CredentialSet, all *tcgen.AllContextParameters) AccTestConfiguration {
	return AccTestConfiguration{
		BillingAccount:       all.BillingAccount,
		BillingAccount2:      all.BillingAccount2,
		ChronicleInstanceId:  set.ChronicleInstanceId,
		Credentials:          set.Credentials,
		CustId:               all.CustId,
		FirestoreProject:     set.FirestoreProject,
		IdentityUser:         set.IdentityUser,
		MasterBillingAccount: set.MasterBillingAccount,
		Org:                  all.Org,
		Org2:                 set.Org2,
		OrgDomain:            all.OrgDomain,
		Project:              set.Project,
		ProjectNumber:        set.ProjectNumber,
		Region:               all.Region,
		ServiceAccount:       set.ServiceAccount,
		VmwareengineProject:  set.VmwareengineProject,
		Zone:                 all.Zone,
	}
}

// GetGaAcceptanceTestConfig returns the configuration for nightly tests of
// the GA provider.
func GetGaAcceptanceTestConfig(all *tcgen.AllContextParameters) AccTestConfiguration {
	return newAccTestConfiguration(all.Ga, all)
}

// GetBetaAcceptanceTestConfig returns the configuration for nightly tests of
// the Beta provider.
func GetBetaAcceptanceTestConfig(all *tcgen.AllContextParameters) AccTestConfiguration {
	return newAccTestConfiguration(all.Beta, all)
}

// GetVcrAcceptanceTestConfig returns the configuration for builds that run
// in the VCR project, recording cassettes to the VCR bucket.
func GetVcrAcceptanceTestConfig(all *tcgen.AllContextParameters) AccTestConfiguration {
	config := newAccTestConfiguration(all.Vcr, all)
	config.InfraProject = all.InfraProject
	config.VcrBucketName = all.VcrBucketName
	return config
}

// ConfigureGoogleSpecificTestParameters exposes config to test runs as
// environment parameters. Credentials are stored as a password.
func ConfigureGoogleSpecificTestParameters(config AccTestConfiguration) model.ParamBlock {
	b := model.ParamBlock{}.
		Password("env.GOOGLE_CREDENTIALS", config.Credentials, "The Google credentials for this test runner").
		Hidden("env.GOOGLE_BILLING_ACCOUNT", config.BillingAccount, "The billing account associated with the first Google organization").
		Hidden("env.GOOGLE_BILLING_ACCOUNT_2", config.BillingAccount2, "The billing account associated with the second Google organization").
		Hidden("env.GOOGLE_CHRONICLE_INSTANCE_ID", config.ChronicleInstanceId, "The id of the Chronicle instance used by tests").
		Hidden("env.GOOGLE_CUST_ID", config.CustId, "The ID of the Google Identity Customer").
		Hidden("env.GOOGLE_FIRESTORE_PROJECT", config.FirestoreProject, "The project used by Firestore tests").
		Hidden("env.GOOGLE_IDENTITY_USER", config.IdentityUser, "The user for the Google Identity Customer").
		Hidden("env.GOOGLE_MASTER_BILLING_ACCOUNT", config.MasterBillingAccount, "The master billing account").
		Hidden("env.GOOGLE_ORG", config.Org, "The Google Organization Id").
		Hidden("env.GOOGLE_ORG_2", config.Org2, "The second Google Organization Id").
		Hidden("env.GOOGLE_ORG_DOMAIN", config.OrgDomain, "The org domain").
		Text("env.GOOGLE_PROJECT", config.Project, "The Google project for this build").
		Hidden("env.GOOGLE_PROJECT_NUMBER", config.ProjectNumber, "The project number associated with the project for this build").
		Text("env.GOOGLE_REGION", config.Region, "The Google region to use").
		Hidden("env.GOOGLE_SERVICE_ACCOUNT", config.ServiceAccount, "The service account").
		Hidden("env.GOOGLE_VMWAREENGINE_PROJECT", config.VmwareengineProject, "The project used for vmwareengine tests").
		Text("env.GOOGLE_ZONE", config.Zone, "The Google zone to use")

	if config.VcrBucketName != "" {
		b = b.Hidden("env.GOOGLE_INFRA_PROJECT", config.InfraProject, "The project used for VCR infrastructure").
			Hidden("env.VCR_BUCKET_NAME", config.VcrBucketName, "The bucket that stores VCR cassettes")
	}

	return b
}
