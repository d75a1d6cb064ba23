package entity

import "sort"

const (
	MaxCommentDepth = 5
	MaxCommentNodes = 500
)

type CommentNode struct {
	Comment *Comment
	Replies []*CommentNode
	// MoreReplies is set when replies exist below the depth cap.
	MoreReplies bool
}

// BuildCommentTree arranges a flat adjacency list into a forest. With a nil
// root the forest starts at top-level comments, otherwise at the direct
// replies of root. Nodes deeper than maxDepth are cut off and at most
// maxNodes nodes are emitted, breadth first, oldest first per level.
func BuildCommentTree(comments []*Comment, root *uint, maxDepth, maxNodes int) []*CommentNode {
	if maxDepth <= 0 {
		maxDepth = MaxCommentDepth
	}
	if maxNodes <= 0 {
		maxNodes = MaxCommentNodes
	}

	children := make(map[uint][]*Comment)
	var top []*Comment
	for _, c := range comments {
		if c.ParentCommentID == nil {
			top = append(top, c)
			continue
		}
		children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
	}

	byAge := func(list []*Comment) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].CreatedAt.Equal(list[j].CreatedAt) {
				return list[i].ID < list[j].ID
			}
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	}
	byAge(top)
	for k := range children {
		byAge(children[k])
	}

	start := top
	if root != nil {
		start = children[*root]
	}

	type item struct {
		node  *CommentNode
		depth int
	}

	forest := make([]*CommentNode, 0, len(start))
	queue := make([]item, 0, len(start))
	emitted := 0
	for _, c := range start {
		if emitted >= maxNodes {
			break
		}
		n := &CommentNode{Comment: c}
		forest = append(forest, n)
		queue = append(queue, item{node: n, depth: 1})
		emitted++
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		kids := children[cur.node.Comment.ID]
		if len(kids) == 0 {
			continue
		}
		if cur.depth >= maxDepth || emitted >= maxNodes {
			cur.node.MoreReplies = true
			continue
		}
		for _, c := range kids {
			if emitted >= maxNodes {
				cur.node.MoreReplies = true
				break
			}
			n := &CommentNode{Comment: c}
			cur.node.Replies = append(cur.node.Replies, n)
			queue = append(queue, item{node: n, depth: cur.depth + 1})
			emitted++
		}
	}

	return forest
}
