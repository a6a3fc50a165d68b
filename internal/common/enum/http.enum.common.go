package enum

type MethodEnum string

const (
	GET    MethodEnum = "GET"
	POST   MethodEnum = "POST"
	PUT    MethodEnum = "PUT"
	PATCH  MethodEnum = "PATCH"
	DELETE MethodEnum = "DELETE"
)

func (e MethodEnum) ToString() string {
	return string(e)
}

func (e MethodEnum) IsValid() bool {
	switch e {
	case GET, POST, PUT, PATCH, DELETE:
		return true
	}
	return false
}
