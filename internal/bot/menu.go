package bot

import "github.com/zosai/marketplace-bot/internal/core/domain"

// Callback data values shared between menus and the handler router.
const (
	cbRoleCustomer   = "role_customer"
	cbRoleStoreOwner = "role_store_owner"
	cbRoleShipper    = "role_shipper"
	cbRoleAdmin      = "role_admin"

	cbProfile     = "profile"
	cbFindStores  = "find_stores"
	cbUploadPhoto = "upload_photo"
	cbMyOrders    = "my_orders"
	cbLoyalty     = "loyalty_points"
	cbTrackOrder  = "track_order"
	cbChangeRole  = "change_role"
)

// roleSelectionMenu is shown on /start and on role change.
var roleSelectionMenu = &domain.Menu{Rows: [][]domain.Button{
	{{Label: "🛍️ Customer", Data: cbRoleCustomer}},
	{{Label: "🏪 Store Owner", Data: cbRoleStoreOwner}},
	{{Label: "🚚 Shipping Partner", Data: cbRoleShipper}},
	{{Label: "⚙️ Admin", Data: cbRoleAdmin}},
}}

var customerMenu = &domain.Menu{Rows: [][]domain.Button{
	{
		{Label: "👤 AI Profile", Data: cbProfile},
		{Label: "🏪 Find Stores", Data: cbFindStores},
	},
	{
		{Label: "📷 AI Photo Analysis", Data: cbUploadPhoto},
		{Label: "🛒 My Orders", Data: cbMyOrders},
	},
	{
		{Label: "⭐ ZOSAI Points", Data: cbLoyalty},
		{Label: "📦 Track Order", Data: cbTrackOrder},
	},
	{{Label: "🔄 Change Role", Data: cbChangeRole}},
}}

var storeOwnerMenu = &domain.Menu{Rows: [][]domain.Button{
	{
		{Label: "📊 AI Dashboard", Data: "store_dashboard"},
		{Label: "📦 Smart Inventory", Data: "inventory"},
	},
	{
		{Label: "⚡ AI Flash Sale", Data: "flash_sale"},
		{Label: "📋 Orders", Data: "store_orders"},
	},
	{{Label: "🔄 Change Role", Data: cbChangeRole}},
}}

var shipperMenu = &domain.Menu{Rows: [][]domain.Button{
	{
		{Label: "📦 My Shipments", Data: "my_shipments"},
		{Label: "🔄 Update Status", Data: "update_status"},
	},
	{{Label: "🔄 Change Role", Data: cbChangeRole}},
}}

// locationRequestMenu asks the client to share coordinates.
var locationRequestMenu = &domain.Menu{Rows: [][]domain.Button{
	{{Label: "📍 Share My Location", RequestLocation: true}},
}}
