package builds

import (
	"fmt"

	"github.com/evergreen-ci/tcgen/model"
)

// Steps reference build parameters with TeamCity's %name% syntax so a user
// running a custom build can override them.

func ConfigureGoEnv() model.BuildStep {
	return model.BuildStep{
		Name: "Configure Go version",
		Script: `#!/bin/bash
set -e
goenv install -s %env.GO_VERSION%
goenv global %env.GO_VERSION%
go version
go env`,
	}
}

func DownloadTerraformBinary() model.BuildStep {
	return model.BuildStep{
		Name: "Download Terraform version %env.TERRAFORM_CORE_VERSION%",
		Script: `#!/bin/bash
set -e
mkdir -p tools
wget -O tf.zip "https://releases.hashicorp.com/terraform/%env.TERRAFORM_CORE_VERSION%/terraform_%env.TERRAFORM_CORE_VERSION%_linux_amd64.zip"
unzip -o tf.zip -d tools
rm tf.zip
echo "##teamcity[setParameter name='env.TF_ACC_TERRAFORM_PATH' value='%system.teamcity.build.checkoutDir%/tools/terraform']"`,
	}
}

func RunAcceptanceTests() model.BuildStep {
	return model.BuildStep{
		Name: "Run acceptance tests",
		Script: `#!/bin/bash
set -e
export TEST_COUNT=$(go test "%PACKAGE_PATH%" -list="%TEST_PREFIX%" | grep -c "^%TEST_PREFIX%" || true)
echo "Found $TEST_COUNT tests that match the given test prefix %TEST_PREFIX%"
if test $TEST_COUNT -le "0"; then
  echo "Skipping test execution; no tests to run"
  exit 0
fi
export TF_ACC=1
go test -v "%PACKAGE_PATH%" -timeout="%TIMEOUT%h" -test.parallel="%PARALLELISM%" -run="%TEST_PREFIX%" -json | tee test-results.json`,
	}
}

func RunSweepers(sweeperStepName string) model.BuildStep {
	return model.BuildStep{
		Name: sweeperStepName,
		Script: fmt.Sprintf(`#!/bin/bash
set -e
echo "Running %s for %%SWEEPER_REGIONS%%"
go test -v "%%PACKAGE_PATH%%" -sweep="%%SWEEPER_REGIONS%%" -sweep-allow-failures -sweep-run="%%SWEEP_RUN%%" -timeout 30m`, sweeperStepName),
	}
}
