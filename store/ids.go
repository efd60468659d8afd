package store

import "github.com/ad1tya-dev/BiteMe/models"

// NextID allocates the next identifier for a collection from the counter
// persisted inside the document. Counters only ever grow, so an id is never
// handed out twice even after entries are deleted (deriving ids from the
// collection length would reuse them once a cart line is removed).
//
// Documents written before counters existed get theirs seeded from the
// highest id currently present in the collection.
func NextID(doc *models.Document, collection string) int {
	if doc.Counters == nil {
		doc.Counters = map[string]int{}
	}
	if _, ok := doc.Counters[collection]; !ok {
		doc.Counters[collection] = maxID(doc, collection)
	}
	doc.Counters[collection]++
	return doc.Counters[collection]
}

func maxID(doc *models.Document, collection string) int {
	max := 0
	switch collection {
	case models.CollectionFoods:
		for _, f := range doc.Foods {
			if f.ID > max {
				max = f.ID
			}
		}
	case models.CollectionUsers:
		for _, u := range doc.Users {
			if u.ID > max {
				max = u.ID
			}
		}
	case models.CollectionCart:
		for _, l := range doc.Cart {
			if l.ID > max {
				max = l.ID
			}
		}
	case models.CollectionOrders:
		for _, o := range doc.Orders {
			if o.ID > max {
				max = o.ID
			}
		}
	}
	return max
}
