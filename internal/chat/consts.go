package chat

const (
	INVENTORY_REPLY = "📦 To manage your inventory:\n1. Go to Products\n2. Click + to add\n3. Edit or delete items\n4. Check stats anytime"

	STATISTICS_REPLY = "📊 Your Statistics:\n• Total Products: Check Dashboard\n• Total Value: Displayed on cards\n• Search to find specific items"

	EXPORT_REPLY = "📥 Export your data:\n• CSV for Excel\n• JSON for backup\n• Text and XLSX reports"

	SEARCH_REPLY = "🔍 Search products:\n1. Go to Search tab\n2. Type product name\n3. Filter results instantly"

	HELP_REPLY = "❓ I can help with:\n• Inventory management\n• Statistics\n• Exporting data\n• Product search\n\nTry asking about: inventory, statistics, export, search"

	DEFAULT_REPLY = "😊 I understand you're asking: '{query}'\n\nI can help with inventory, statistics, search, and exports. What would you like to know?"

	ASSISTANT_INSTRUCTION string = `You are the assistant of SmartShop, an inventory app.
	Users manage products with a name, a quantity and a unit price, watch the total stock value,
	search products by name and export the inventory as CSV, JSON, text or XLSX files.
	Answer the user's question about the app in at most three short sentences.
	If the question is unrelated to inventory management, say that you can only help with SmartShop.`
)
