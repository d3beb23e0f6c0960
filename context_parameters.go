package tcgen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/evergreen-ci/tcgen/util"
	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// CredentialSet holds the values that differ between the GA, Beta and VCR
// test environments.
type CredentialSet struct {
	// Credentials is a TeamCity credentials token (credentialsJSON:...)
	// for the service account key used by the tests.
	Credentials          string `yaml:"credentials" json:"credentials"`
	ServiceAccount       string `yaml:"service_account" json:"service_account"`
	Project              string `yaml:"project" json:"project"`
	ProjectNumber        string `yaml:"project_number,omitempty" json:"project_number,omitempty"`
	IdentityUser         string `yaml:"identity_user,omitempty" json:"identity_user,omitempty"`
	FirestoreProject     string `yaml:"firestore_project,omitempty" json:"firestore_project,omitempty"`
	MasterBillingAccount string `yaml:"master_billing_account,omitempty" json:"master_billing_account,omitempty"`
	Org2                 string `yaml:"org_2,omitempty" json:"org_2,omitempty"`
	ChronicleInstanceId  string `yaml:"chronicle_instance_id,omitempty" json:"chronicle_instance_id,omitempty"`
	VmwareengineProject  string `yaml:"vmwareengine_project,omitempty" json:"vmwareengine_project,omitempty"`
}

// NightlySettings adjust the schedule of the nightly test projects. Empty
// values keep each project's own schedule.
type NightlySettings struct {
	// Branch is the full ref the nightly builds run against, e.g.
	// refs/heads/main.
	Branch      string `yaml:"branch,omitempty" json:"branch,omitempty"`
	StartHour   *int   `yaml:"start_hour,omitempty" json:"start_hour,omitempty"`
	DaysOfMonth string `yaml:"days_of_month,omitempty" json:"days_of_month,omitempty"`
	Disabled    bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// AllContextParameters is the full set of values the generated
// configuration needs. Narrower acceptance test configurations are derived
// from it; it is never mutated by the project assemblers.
type AllContextParameters struct {
	Ga   CredentialSet `yaml:"ga" json:"ga"`
	Beta CredentialSet `yaml:"beta" json:"beta"`
	Vcr  CredentialSet `yaml:"vcr" json:"vcr"`

	BillingAccount  string `yaml:"billing_account" json:"billing_account"`
	BillingAccount2 string `yaml:"billing_account_2,omitempty" json:"billing_account_2,omitempty"`
	CustId          string `yaml:"cust_id,omitempty" json:"cust_id,omitempty"`
	Org             string `yaml:"org" json:"org"`
	OrgDomain       string `yaml:"org_domain,omitempty" json:"org_domain,omitempty"`
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	Zone            string `yaml:"zone,omitempty" json:"zone,omitempty"`

	// InfraProject and VcrBucketName are only used by VCR builds, which
	// record and replay HTTP cassettes stored in the bucket.
	InfraProject  string `yaml:"infra_project,omitempty" json:"infra_project,omitempty"`
	VcrBucketName string `yaml:"vcr_bucket_name" json:"vcr_bucket_name"`

	Nightly NightlySettings `yaml:"nightly,omitempty" json:"nightly,omitempty"`
}

// DefaultConfigPath returns the context parameter file in the user's home
// directory.
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "finding home directory")
	}
	return filepath.Join(home, DefaultConfigFileName), nil
}

// LoadContextParameters reads the parameters from a YAML file. Unknown keys
// are rejected. The result is not validated.
func LoadContextParameters(fn string) (*AllContextParameters, error) {
	p := &AllContextParameters{}
	if err := util.ReadYAMLFileStrict(fn, p); err != nil {
		return nil, errors.Wrapf(err, "loading context parameters from '%s'", fn)
	}

	grip.Debug(message.Fields{
		"message": "loaded context parameters",
		"path":    fn,
	})

	return p, nil
}

// ValidateAndDefault fills in optional values and checks that every value
// the generated builds depend on is set.
func (p *AllContextParameters) ValidateAndDefault() error {
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.Zone == "" {
		p.Zone = DefaultZone
	}

	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(p.BillingAccount == "", "billing account must be set")
	catcher.NewWhen(p.Org == "", "org must be set")
	catcher.NewWhen(p.VcrBucketName == "", "VCR bucket name must be set")
	catcher.ErrorfWhen(!strings.HasPrefix(p.Zone, p.Region), "zone '%s' is not in region '%s'", p.Zone, p.Region)
	catcher.ErrorfWhen(p.Nightly.StartHour != nil && (*p.Nightly.StartHour < 0 || *p.Nightly.StartHour > 23), "nightly start hour %d is not between 0 and 23", derefInt(p.Nightly.StartHour))
	catcher.Wrap(p.Ga.validate(), "validating GA credentials")
	catcher.Wrap(p.Beta.validate(), "validating Beta credentials")
	catcher.Wrap(p.Vcr.validate(), "validating VCR credentials")

	return catcher.Resolve()
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func (c *CredentialSet) validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(c.Credentials == "", "credentials must be set")
	catcher.NewWhen(c.Project == "", "project must be set")
	catcher.NewWhen(c.ServiceAccount == "", "service account must be set")
	return catcher.Resolve()
}

// ApplyOverrides sets parameters from KEY=VALUE strings. Keys are the YAML
// names; nested values use dots, e.g. "ga.project=my-project".
func (p *AllContextParameters) ApplyOverrides(overrides []string) error {
	pairs, err := ParseKeyValuePairs(overrides)
	if err != nil {
		return errors.Wrap(err, "parsing overrides")
	}
	return errors.Wrap(p.decode(pairs.Nested()), "applying overrides")
}

// ApplyEnvironment sets parameters from TCGEN_-prefixed environment
// variables, e.g. TCGEN_GA_PROJECT or TCGEN_BILLING_ACCOUNT. A nil lookup
// reads the process environment.
func (p *AllContextParameters) ApplyEnvironment(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var pairs KeyValuePairSlice
	for _, key := range ParameterKeys() {
		if val, ok := lookup(EnvVarName(key)); ok {
			pairs = append(pairs, KeyValuePair{Key: key, Value: val})
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	grip.Debug(message.Fields{
		"message": "applying context parameters from environment",
		"count":   len(pairs),
	})

	return errors.Wrap(p.decode(pairs.Nested()), "applying environment")
}

// EnvVarName returns the environment variable that sets the parameter with
// the given dotted key.
func EnvVarName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.Replace(key, ".", "_", -1))
}

func (p *AllContextParameters) decode(input map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           p,
	})
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}
	return decoder.Decode(input)
}

// ParameterKeys returns the dotted YAML key of every settable parameter.
func ParameterKeys() []string {
	return parameterKeys(structs.Fields(AllContextParameters{}), "")
}

func parameterKeys(fields []*structs.Field, prefix string) []string {
	var keys []string
	for _, field := range fields {
		name := strings.Split(field.Tag("yaml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if structs.IsStruct(field.Value()) {
			keys = append(keys, parameterKeys(field.Fields(), prefix+name+".")...)
			continue
		}
		keys = append(keys, prefix+name)
	}
	return keys
}
