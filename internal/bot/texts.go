package bot

// Static reply copy. The transport renders these verbatim; they carry no
// state and no formatting beyond what the client understands natively.

const changeRoleText = "Select your role:"

const accessDeniedText = "⛔ Access denied."

const customerWelcomeText = `🛍️ Welcome Customer! You can now:

👤 AI Profile – set up your style preferences
🏪 Find Stores – discover nearby fashion stores
📷 AI Photo Analysis – upload photos for color analysis
🛒 My Orders – track your purchases
⭐ ZOSAI Points – earn and redeem rewards

Use the buttons below to get started!`

const storeOwnerWelcomeText = `🏪 Welcome Store Owner! Your dashboard includes:

📊 AI Dashboard – smart analytics and insights
📦 Smart Inventory – manage products
⚡ AI Flash Sales – create promotional campaigns
📋 Order Management – process customer orders`

const shipperWelcomeText = `🚚 Welcome Shipping Partner! Your tools:

📦 My Shipments – view assigned delivery tasks
🔄 Update Status – real-time delivery tracking`

const adminWelcomeText = `⚙️ Welcome Admin! System management tools:

👥 User Management
🏪 Store Oversight
📊 Analytics
⚙️ System Settings`

const profileText = `👤 ZOSAI AI Profile Setup

To personalize recommendations, please share:
📏 your measurements, 🎨 your style preferences,
📍 your location for nearby store discovery.`

const findStoresText = `🏪 ZOSAI Store Discovery

Share your location to find nearby clothing stores,
see distance and ratings, and catch current promotions.`

const uploadPhotoText = `📷 ZOSAI AI Photo Analysis

Upload a photo of any clothing item and I'll extract its color
palette and find matching items from nearby stores.

Tips: use clear, well-lit photos and avoid busy backgrounds.
Just send me the photo now! 📸`

const myOrdersText = `🛒 Your ZOSAI Orders

📦 Active orders: 0
✅ Completed orders: 0

No orders yet – use Find Stores to place your first one!`

const photoAnalysisText = `🎨 ZOSAI AI Analysis Complete!

Detected colors:
• Primary: Deep Blue (#1E3A8A) – 45%
• Secondary: White (#FFFFFF) – 30%
• Accent: Silver Gray (#9CA3AF) – 25%

🎯 Style: Casual Smart  📊 Trend score: 8.5/10

🎁 You earned 50 loyalty points for using photo analysis!`

const locationSavedText = `📍 Location saved!

ZOSAI found 5 nearby stores within 10km and 2 active flash sales.
Ready to explore and find your perfect outfit?`

const helpText = `🤖 ZOSAI – AI Fashion Marketplace

Commands:
/start – welcome and role selection
/help – this menu
/track <id> – track an order

Use the inline menus for profiles, store discovery,
photo analysis, orders, and loyalty points.`
