// Package cafe holds the Anakkallumkal Cafe domain data: the menu and the
// manager persona driving the voice session.
package cafe

type MenuItem struct {
	Name        string
	Price       int
	Category    string
	Description string
}

func Menu() []MenuItem {
	return []MenuItem{
		{Name: "Karimeen Pollichathu", Price: 450, Category: "Special", Description: "Pearl spot fish marinated in spices and grilled in banana leaf."},
		{Name: "Kerala Sadhya", Price: 250, Category: "Special", Description: "Traditional vegetarian feast."},
		{Name: "Beef Roast", Price: 200, Category: "Special", Description: "Spicy Kerala style beef roast."},
		{Name: "Appam & Stew", Price: 150, Category: "Special", Description: "Soft rice pancakes with coconut milk vegetable stew."},
		{Name: "Kulukki Sarbath", Price: 40, Category: "Drink", Description: "Shaken lemonade with basil seeds and chilli."},
		{Name: "Fresh Lime Juice", Price: 30, Category: "Drink", Description: "Refreshing lime juice."},
	}
}
