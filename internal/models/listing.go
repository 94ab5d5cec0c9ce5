package models

// ListingRow is one draft listing in the bulk editor. Every editable cell is a
// string: the grid tolerates malformed numeric input by degrading the derived
// value rather than rejecting the keystroke, so typing is never blocked.
type ListingRow struct {
	// Device identity. Locked for editing in multi-variant mode because the
	// values are derived from the descriptor that produced the row.
	SkuFamilyID   string `json:"skuFamilyId"`
	SubFamilyID   string `json:"subFamilyId,omitempty"`
	ModelName     string `json:"modelName"`
	Storage       string `json:"storage"`
	Color         string `json:"color"`
	RAM           string `json:"ram,omitempty"`
	Country       string `json:"country"`
	SimType       string `json:"simType"`
	Version       string `json:"version"`
	Grade         string `json:"grade"`
	Status        string `json:"status"`
	LockStatus    string `json:"lockStatus"`
	Warranty      string `json:"warranty"`
	BatteryHealth string `json:"batteryHealth"`
	IdentityLocked bool  `json:"identityLocked"`

	// Commercial.
	Packing          string `json:"packing"`
	CurrentLocation  string `json:"currentLocation"`
	HkUsd            string `json:"hkUsd"`
	HkXe             string `json:"hkXe"`
	HkHkd            string `json:"hkHkd"`
	DxbUsd           string `json:"dxbUsd"`
	DxbXe            string `json:"dxbXe"`
	DxbAed           string `json:"dxbAed"`
	DeliveryLocation string `json:"deliveryLocation"`
	TotalQty         string `json:"totalQty"`
	MinOrderQty      string `json:"minOrderQty"`
	CartMinOrderQty  string `json:"cartMinOrderQty"`
	Weight           string `json:"weight"`
	PaymentTerm      string `json:"paymentTerm"`
	PaymentMethod    string `json:"paymentMethod"`

	// Listing metadata.
	Negotiable            string `json:"negotiable"`
	ShippingTime          string `json:"shippingTime"`
	VendorCode            string `json:"vendorCode"`
	CarrierCode           string `json:"carrierCode"`
	UniqueListingNo       string `json:"uniqueListingNo"`
	PromoTags             string `json:"promoTags"`
	AdminMessage          string `json:"adminMessage"`
	StartDate             string `json:"startDate"`
	EndDate               string `json:"endDate"`
	SupplierRef           string `json:"supplierRef"`
	SupplierListingNumber string `json:"supplierListingNumber"`
	Remark                string `json:"remark"`
	Sequence              int    `json:"sequence"`
}

// Cell returns the value of one addressable column. Unknown keys read as "".
func (r *ListingRow) Cell(key string) string {
	switch key {
	case "skuFamilyId":
		return r.SkuFamilyID
	case "subFamilyId":
		return r.SubFamilyID
	case "modelName":
		return r.ModelName
	case "storage":
		return r.Storage
	case "color":
		return r.Color
	case "ram":
		return r.RAM
	case "country":
		return r.Country
	case "simType":
		return r.SimType
	case "version":
		return r.Version
	case "grade":
		return r.Grade
	case "status":
		return r.Status
	case "lockStatus":
		return r.LockStatus
	case "warranty":
		return r.Warranty
	case "batteryHealth":
		return r.BatteryHealth
	case "packing":
		return r.Packing
	case "currentLocation":
		return r.CurrentLocation
	case "hkUsd":
		return r.HkUsd
	case "hkXe":
		return r.HkXe
	case "hkHkd":
		return r.HkHkd
	case "dxbUsd":
		return r.DxbUsd
	case "dxbXe":
		return r.DxbXe
	case "dxbAed":
		return r.DxbAed
	case "deliveryLocation":
		return r.DeliveryLocation
	case "totalQty":
		return r.TotalQty
	case "minOrderQty":
		return r.MinOrderQty
	case "cartMinOrderQty":
		return r.CartMinOrderQty
	case "weight":
		return r.Weight
	case "paymentTerm":
		return r.PaymentTerm
	case "paymentMethod":
		return r.PaymentMethod
	case "negotiable":
		return r.Negotiable
	case "shippingTime":
		return r.ShippingTime
	case "vendorCode":
		return r.VendorCode
	case "carrierCode":
		return r.CarrierCode
	case "uniqueListingNo":
		return r.UniqueListingNo
	case "promoTags":
		return r.PromoTags
	case "adminMessage":
		return r.AdminMessage
	case "startDate":
		return r.StartDate
	case "endDate":
		return r.EndDate
	case "supplierRef":
		return r.SupplierRef
	case "supplierListingNumber":
		return r.SupplierListingNumber
	case "remark":
		return r.Remark
	}
	return ""
}

// SetCell writes one addressable column. Unknown keys are ignored; the grid
// treats them as a no-op rather than an error.
func (r *ListingRow) SetCell(key, value string) bool {
	switch key {
	case "skuFamilyId":
		r.SkuFamilyID = value
	case "subFamilyId":
		r.SubFamilyID = value
	case "modelName":
		r.ModelName = value
	case "storage":
		r.Storage = value
	case "color":
		r.Color = value
	case "ram":
		r.RAM = value
	case "country":
		r.Country = value
	case "simType":
		r.SimType = value
	case "version":
		r.Version = value
	case "grade":
		r.Grade = value
	case "status":
		r.Status = value
	case "lockStatus":
		r.LockStatus = value
	case "warranty":
		r.Warranty = value
	case "batteryHealth":
		r.BatteryHealth = value
	case "packing":
		r.Packing = value
	case "currentLocation":
		r.CurrentLocation = value
	case "hkUsd":
		r.HkUsd = value
	case "hkXe":
		r.HkXe = value
	case "hkHkd":
		r.HkHkd = value
	case "dxbUsd":
		r.DxbUsd = value
	case "dxbXe":
		r.DxbXe = value
	case "dxbAed":
		r.DxbAed = value
	case "deliveryLocation":
		r.DeliveryLocation = value
	case "totalQty":
		r.TotalQty = value
	case "minOrderQty":
		r.MinOrderQty = value
	case "cartMinOrderQty":
		r.CartMinOrderQty = value
	case "weight":
		r.Weight = value
	case "paymentTerm":
		r.PaymentTerm = value
	case "paymentMethod":
		r.PaymentMethod = value
	case "negotiable":
		r.Negotiable = value
	case "shippingTime":
		r.ShippingTime = value
	case "vendorCode":
		r.VendorCode = value
	case "carrierCode":
		r.CarrierCode = value
	case "uniqueListingNo":
		r.UniqueListingNo = value
	case "promoTags":
		r.PromoTags = value
	case "adminMessage":
		r.AdminMessage = value
	case "startDate":
		r.StartDate = value
	case "endDate":
		r.EndDate = value
	case "supplierRef":
		r.SupplierRef = value
	case "supplierListingNumber":
		r.SupplierListingNumber = value
	case "remark":
		r.Remark = value
	default:
		return false
	}
	return true
}

// ListingColumn describes one grid column for validation and sheet round-trips.
type ListingColumn struct {
	Key      string
	Label    string
	Required bool
	Identity bool
}

// ListingColumns is the canonical column order of the grid. Required columns
// drive the advisory submit sweep; identity columns are the ones locked in
// multi-variant mode.
var ListingColumns = []ListingColumn{
	{Key: "skuFamilyId", Label: "SKU Family", Required: true, Identity: true},
	{Key: "subFamilyId", Label: "Sub Family", Identity: true},
	{Key: "modelName", Label: "Model", Required: true, Identity: true},
	{Key: "storage", Label: "Storage", Required: true, Identity: true},
	{Key: "color", Label: "Color", Required: true, Identity: true},
	{Key: "ram", Label: "RAM", Identity: true},
	{Key: "country", Label: "Country", Required: true},
	{Key: "simType", Label: "SIM Type", Required: true},
	{Key: "version", Label: "Version"},
	{Key: "grade", Label: "Grade", Required: true},
	{Key: "status", Label: "Status", Required: true},
	{Key: "lockStatus", Label: "Lock Status", Required: true},
	{Key: "warranty", Label: "Warranty"},
	{Key: "batteryHealth", Label: "Battery Health"},
	{Key: "packing", Label: "Packing", Required: true},
	{Key: "currentLocation", Label: "Current Location", Required: true},
	{Key: "hkUsd", Label: "HK USD"},
	{Key: "hkXe", Label: "HK Exchange Rate"},
	{Key: "hkHkd", Label: "HK HKD"},
	{Key: "dxbUsd", Label: "Dubai USD"},
	{Key: "dxbXe", Label: "Dubai Exchange Rate"},
	{Key: "dxbAed", Label: "Dubai AED"},
	{Key: "deliveryLocation", Label: "Delivery Location"},
	{Key: "totalQty", Label: "Total Quantity", Required: true},
	{Key: "minOrderQty", Label: "Min Order Quantity", Required: true},
	{Key: "cartMinOrderQty", Label: "Cart Min Order Quantity"},
	{Key: "weight", Label: "Weight"},
	{Key: "paymentTerm", Label: "Payment Term"},
	{Key: "paymentMethod", Label: "Payment Method"},
	{Key: "negotiable", Label: "Negotiable"},
	{Key: "shippingTime", Label: "Shipping Time"},
	{Key: "vendorCode", Label: "Vendor Code"},
	{Key: "carrierCode", Label: "Carrier Code"},
	{Key: "uniqueListingNo", Label: "Listing No"},
	{Key: "promoTags", Label: "Promo Tags"},
	{Key: "adminMessage", Label: "Admin Message"},
	{Key: "startDate", Label: "Start Date"},
	{Key: "endDate", Label: "End Date"},
	{Key: "supplierRef", Label: "Supplier Ref", Required: true},
	{Key: "supplierListingNumber", Label: "Supplier Listing No", Required: true},
	{Key: "remark", Label: "Remark"},
}

// ColumnByKey looks up a column definition; ok is false for unknown keys.
func ColumnByKey(key string) (ListingColumn, bool) {
	for _, col := range ListingColumns {
		if col.Key == key {
			return col, true
		}
	}
	return ListingColumn{}, false
}
