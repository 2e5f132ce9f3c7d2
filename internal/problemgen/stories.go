package problemgen

// storyNames and storyItems fill the local story template. Items are plural
// nouns so the sentence reads naturally for any count.
var storyNames = []string{
	"Sara", "Omar", "Lina", "Adam", "Maya", "Yusuf", "Noor", "Sam", "Zara", "Leo",
}

var storyItems = []string{
	"apples", "balloons", "pencils", "stickers", "cookies",
	"marbles", "books", "flowers", "toy cars", "seashells",
}
