package hostagent

// Instance is an installed SAP instance as reported by the host agent.
type Instance struct {
	SID          string
	Hostname     string
	SystemNumber string
}

// DatabaseInstance is a single instance of a database system.
type DatabaseInstance struct {
	Name string
	Host string
}

// DatabaseSystem describes a database known to the host agent.
type DatabaseSystem struct {
	Name          string
	Type          string
	Version       string
	ConnectString string
	Instances     []DatabaseInstance
}

// Destination is an SLD / LMDB registration target.
type Destination struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
}
