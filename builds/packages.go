package builds

import (
	"fmt"
	"sort"

	"github.com/evergreen-ci/tcgen"
	"github.com/pkg/errors"
)

// Package is a Go package of the provider that gets its own build
// configuration.
type Package struct {
	Name        string
	DisplayName string
	Path        string
}

// Packages outside of google/services that hold acceptance tests.
var corePackages = map[string]string{
	"envvar":      "Environment Variables",
	"fwmodels":    "Framework Models",
	"fwprovider":  "Framework Provider",
	"fwresource":  "Framework Resource",
	"fwtransport": "Framework Transport",
	"provider":    "SDK Provider",
	"tpgresource": "TPG Resource",
	"transport":   "Transport",
}

var servicesGa = map[string]string{
	"accessapproval":   "Access Approval",
	"alloydb":          "AlloyDB",
	"apigee":           "Apigee",
	"artifactregistry": "Artifact Registry",
	"bigquery":         "BigQuery",
	"bigtable":         "Bigtable",
	"cloudfunctions":   "Cloud Functions",
	"cloudrun":         "Cloud Run",
	"compute":          "Compute",
	"container":        "Container",
	"dns":              "DNS",
	"iam2":             "IAM2",
	"kms":              "KMS",
	"lustre":           "Lustre",
	"pubsub":           "PubSub",
	"resourcemanager":  "Resource Manager",
	"secretmanager":    "Secret Manager",
	"sql":              "SQL",
	"storage":          "Storage",
}

// Services that only exist in the Beta provider.
var servicesBetaOnly = map[string]string{
	"apphub":        "App Hub",
	"gkehub2":       "GKE Hub 2",
	"runtimeconfig": "Runtime Config",
}

// Packages returns the packages of the named provider sorted by name.
func Packages(providerName string) ([]Package, error) {
	var services map[string]string
	switch providerName {
	case tcgen.ProviderNameGa:
		services = servicesGa
	case tcgen.ProviderNameBeta:
		services = make(map[string]string, len(servicesGa)+len(servicesBetaOnly))
		for k, v := range servicesGa {
			services[k] = v
		}
		for k, v := range servicesBetaOnly {
			services[k] = v
		}
	default:
		return nil, errors.Errorf("unknown provider '%s'", providerName)
	}

	dir := "./" + providerName
	out := make([]Package, 0, len(corePackages)+len(services))
	for name, display := range corePackages {
		out = append(out, Package{Name: name, DisplayName: display, Path: fmt.Sprintf("%s/%s", dir, name)})
	}
	for name, display := range services {
		out = append(out, Package{Name: name, DisplayName: display, Path: fmt.Sprintf("%s/services/%s", dir, name)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
