package hostagent

import "encoding/xml"

// Wire shapes of the SAPHostControl operations. Property bags arrive as
// mKey/mValue item lists; discovery results as mName/mValue item lists.

const installedSelector = "S-INSTALLED"

type property struct {
	Key   string `xml:"mKey"`
	Value string `xml:"mValue"`
}

type namedProperty struct {
	Name  string `xml:"mName"`
	Value string `xml:"mValue"`
}

type propertyList struct {
	Items []property `xml:"item"`
}

// --- ListInstances ---

type listInstancesRequest struct {
	XMLName  xml.Name          `xml:"ns1:ListInstances"`
	Selector *instanceSelector `xml:"aSelector,omitempty"`
}

type instanceSelector struct {
	InstanceStatus string `xml:"aInstanceStatus"`
}

type listInstancesResponse struct {
	XMLName   xml.Name       `xml:"ListInstancesResponse"`
	Instances []wireInstance `xml:"instance>item"`
}

type wireInstance struct {
	SID          string `xml:"mSid"`
	Hostname     string `xml:"mHostname"`
	SystemNumber string `xml:"mSystemNumber"`
}

// --- ListDatabaseSystems ---

type listDatabaseSystemsRequest struct {
	XMLName   xml.Name `xml:"ns1:ListDatabaseSystems"`
	Arguments string   `xml:"aArguments"`
}

type listDatabaseSystemsResponse struct {
	XMLName   xml.Name       `xml:"ListDatabaseSystemsResponse"`
	Databases []wireDatabase `xml:"database>item"`
}

type wireDatabase struct {
	Database   []property             `xml:"mDatabase>item"`
	Properties []property             `xml:"mProperties>item"`
	Instances  []wireDatabaseInstance `xml:"mInstances>item"`
}

type wireDatabaseInstance struct {
	Instance []property `xml:"mInstance>item"`
}

// --- GetDatabaseStatus ---

type getDatabaseStatusRequest struct {
	XMLName   xml.Name     `xml:"ns1:GetDatabaseStatus"`
	Arguments propertyList `xml:"aArguments"`
}

type getDatabaseStatusResponse struct {
	XMLName xml.Name `xml:"GetDatabaseStatusResponse"`
	Status  string   `xml:"status"`
}

// --- StartDatabase / StopDatabase ---

type operationOptions struct {
	Timeout     int    `xml:"mTimeout"`
	SoftTimeout int    `xml:"mSoftTimeout"`
	Options     string `xml:"mOptions"`
}

type startDatabaseRequest struct {
	XMLName   xml.Name         `xml:"ns1:StartDatabase"`
	Arguments propertyList     `xml:"aArguments"`
	Options   operationOptions `xml:"aOptions"`
}

type stopDatabaseRequest struct {
	XMLName   xml.Name         `xml:"ns1:StopDatabase"`
	Arguments propertyList     `xml:"aArguments"`
	Options   operationOptions `xml:"aOptions"`
}

type operationResult struct {
	MessageKey   string `xml:"mMessageKey"`
	MessageValue string `xml:"mMessageValue"`
}

type startDatabaseResponse struct {
	XMLName xml.Name          `xml:"StartDatabaseResponse"`
	Results []operationResult `xml:"mOperationResults>item"`
}

type stopDatabaseResponse struct {
	XMLName xml.Name          `xml:"StopDatabaseResponse"`
	Results []operationResult `xml:"mOperationResults>item"`
}

// --- ConfigureOutsideDiscovery ---

type configureOutsideDiscoveryRequest struct {
	XMLName       xml.Name        `xml:"ns1:ConfigureOutsideDiscovery"`
	Configuration odConfiguration `xml:"configuration"`
}

type odConfiguration struct {
	Flags        string         `xml:"flags"`
	Destinations odDestinations `xml:"destinations"`
	Arguments    string         `xml:"arguments"`
}

type odDestinations struct {
	Items []odDestination `xml:"item"`
}

type odDestination struct {
	Host     string `xml:"host"`
	Port     int    `xml:"port"`
	Username string `xml:"username"`
	Password string `xml:"password"`
	UseSSL   bool   `xml:"useSSL"`
}

type discoveryMember struct {
	Properties []namedProperty `xml:"mProperties>item"`
}

type configureOutsideDiscoveryResponse struct {
	XMLName xml.Name          `xml:"ConfigureOutsideDiscoveryResponse"`
	Members []discoveryMember `xml:"mMembers>item"`
}

// --- ExecuteOutsideDiscovery ---

type executeOutsideDiscoveryRequest struct {
	XMLName   xml.Name       `xml:"ns1:ExecuteOutsideDiscovery"`
	Arguments string         `xml:"aArguments"`
	Options   executeOptions `xml:"mOptions"`
}

type executeOptions struct {
	Items []string `xml:"item"`
}

type executeOutsideDiscoveryResponse struct {
	XMLName xml.Name          `xml:"ExecuteOutsideDiscoveryResponse"`
	Members []discoveryMember `xml:"instance>item"`
}
