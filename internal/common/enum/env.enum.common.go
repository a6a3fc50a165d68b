package enum

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	TEST        EnvEnum = "test"
	DEVELOPMENT EnvEnum = "development"
	PRODUCTION  EnvEnum = "production"
	STAGING     EnvEnum = "staging"
)

func (e EnvEnum) ToString() string {
	if e.IsValid() {
		return string(e)
	}
	return ""
}

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, TEST, DEVELOPMENT, PRODUCTION, STAGING:
		return true
	}
	return false
}

// RunsWorkers reports whether background consumers start with the API.
func (e EnvEnum) RunsWorkers() bool {
	return e == PRODUCTION || e == STAGING
}

// IsDeployed reports whether the environment serves real traffic.
func (e EnvEnum) IsDeployed() bool {
	return e == PRODUCTION || e == STAGING
}
